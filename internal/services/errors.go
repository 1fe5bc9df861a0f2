package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized means the caller lacks the capability for the
	// attempted operation.
	ErrUnauthorized = errors.New("operation not permitted")

	// ErrInvalidCredentials covers both unknown email and bad password
	// so sign-in failures do not leak which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned by sign-up for duplicate emails.
	ErrEmailTaken = errors.New("email already registered")

	// ErrDispatchFailed means every recipient of an SOS fan-out failed.
	// Partial failure is not an error; it is reported per recipient.
	ErrDispatchFailed = errors.New("failed to send SOS to any contact")

	// ErrNoRoute means the directions provider returned no usable
	// route between the requested points.
	ErrNoRoute = errors.New("no route found between the given points")
)

// ValidationError carries per-field messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
