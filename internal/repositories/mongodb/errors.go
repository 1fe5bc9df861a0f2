package mongodb

import (
	"context"
	"errors"
	"fmt"

	"safecity/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
)

// classifyError maps driver failures onto the storage taxonomy so the
// service layer can answer with retry-appropriate responses. The
// context deadline case covers queries raced against an explicit
// ceiling.
func classifyError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return interfaces.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, interfaces.ErrTimeout)
	case errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%s: %w", op, interfaces.ErrUnavailable)
	case mongo.IsNetworkError(err):
		return fmt.Errorf("%s: %w", op, interfaces.ErrUnavailable)
	case mongo.IsTimeout(err):
		return fmt.Errorf("%s: %w", op, interfaces.ErrTimeout)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
