package store

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotFound is returned when a deployment record is not found.
	ErrNotFound = errors.New("deployment record not found")

	// ErrConnectionFailed is returned when the database connection fails.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrMigrationFailed is returned when database migration fails.
	ErrMigrationFailed = errors.New("database migration failed")

	// ErrInvalidData is returned when stored data cannot be decoded.
	ErrInvalidData = errors.New("invalid stored data")
)

// StoreError wraps errors with additional context about the failing
// operation and the stack involved.
type StoreError struct {
	Op      string
	Stack   string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Stack, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, stack, message string, err error) *StoreError {
	return &StoreError{
		Op:      op,
		Stack:   stack,
		Message: message,
		Err:     err,
	}
}
