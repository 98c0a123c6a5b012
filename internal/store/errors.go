package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotApplied signals that a conditional (IF EXISTS / IF NOT EXISTS)
	// statement did not apply. Callers branch on it the way a real client
	// library distinguishes an LWT conflict from a failure.
	ErrNotApplied = errors.New("lwt query was not applied")

	// ErrPrimaryKeyMissing is returned when an insert resolves any primary
	// key column to nil.
	ErrPrimaryKeyMissing = errors.New("primary key was not provided")

	ErrKeyspaceNotFound = errors.New("keyspace not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrTableExists      = errors.New("table already exists")
)

// Error wraps a sentinel error with additional context
type Error struct {
	err     error  // The underlying sentinel error
	context string // Additional error context
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e.context == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.context)
}

// Unwrap implements the errors.Unwrap interface for compatibility with errors.Is/As
func (e *Error) Unwrap() error {
	return e.err
}

// newError creates a new store error with context
func newError(err error, format string, args ...interface{}) *Error {
	return &Error{
		err:     err,
		context: fmt.Sprintf(format, args...),
	}
}
