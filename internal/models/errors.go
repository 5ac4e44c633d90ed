package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record matches the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would duplicate a key.
	ErrConflict = errors.New("duplicate key")
	// ErrInvalidInput is returned for request bodies or params that cannot be used.
	ErrInvalidInput = errors.New("invalid input")
)

// Invalid returns an ErrInvalidInput carrying a client-facing reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
