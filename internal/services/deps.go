package services

import (
	"context"
	"time"
)

// Cache is the subset of the Redis wrapper the services consume.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// Broadcaster pushes events to the live moderation feed.
type Broadcaster interface {
	BroadcastEvent(eventType string, data map[string]interface{})
}
