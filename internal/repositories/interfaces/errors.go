package interfaces

import "errors"

// Storage error taxonomy. Repositories classify driver failures into
// these sentinels so callers can pick retry-appropriate responses.
var (
	ErrNotFound    = errors.New("record not found")
	ErrUnavailable = errors.New("storage unavailable")
	ErrTimeout     = errors.New("storage timeout")
)
