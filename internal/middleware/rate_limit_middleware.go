package middleware

import (
	"context"
	"net/http"
	"time"

	"safecity/internal/utils"
	"safecity/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Counter is the subset of the Redis wrapper the limiter consumes.
type Counter interface {
	Increment(ctx context.Context, key string) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
}

// RateLimit caps how often a single client may hit a public endpoint
// within a fixed window. Counters live in Redis keyed by route and
// client IP. When the counter store is unreachable the request passes
// through: an unavailable limiter must never block an emergency call.
func RateLimit(counter Counter, limit int64, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := utils.CacheRateLimitPrefix + c.FullPath() + ":" + c.ClientIP()

		count, err := counter.Increment(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).Warn("Rate limit counter unavailable, letting request through")
			c.Next()
			return
		}

		// first hit in the window starts the clock
		if count == 1 {
			if err := counter.SetExpire(c.Request.Context(), key, window); err != nil {
				log.WithError(err).Warn("Failed to set rate limit window")
			}
		}

		if count > limit {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", utils.ErrTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}
