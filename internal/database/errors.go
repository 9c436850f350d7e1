package database

import (
	"errors"
	"fmt"

	"github.com/nfrund/zippytrip/internal/domain"
)

// Common database errors that can be checked using errors.Is().
var (
	// ErrNotFound aliases the domain sentinel so callers can match either.
	ErrNotFound = domain.ErrNotFound

	// ErrInvalidInput is returned when invalid input is provided to a method.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrQueryFailed is returned when a query execution fails.
	ErrQueryFailed = errors.New("query execution failed")

	// ErrNotConnected is returned when the database cannot be reached.
	ErrNotConnected = errors.New("database not connected")
)

// DBError represents a database error with additional context.
type DBError struct {
	// Op describes what was being performed, e.g. "find preferences".
	Op string
	// Query is the statement that was being executed, if any.
	Query string
	// Err is the underlying error.
	Err error
}

// NewDBError creates a new DBError for the given operation.
func NewDBError(op string, err error) *DBError {
	return &DBError{Op: op, Err: err}
}

// WithQuery adds query information to the error.
func (e *DBError) WithQuery(query string) *DBError {
	e.Query = query
	return e
}

func (e *DBError) Error() string {
	msg := e.Op
	if e.Query != "" {
		msg = fmt.Sprintf("%s\nQuery: %s", msg, e.Query)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DBError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means "no such record".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
