package selftest

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent is wrapped by every ParseError.
var ErrInvalidEvent = errors.New("invalid event")

// ParseError reports a command token that is not part of the grammar
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidEvent, e.Token)
}

// Unwrap implements the errors.Unwrap interface
func (e *ParseError) Unwrap() error {
	return ErrInvalidEvent
}

// RuntimeError represents an operational error that should lead to exit code 2
// Examples include a check that cannot spawn its subprocess, or a bad flag.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}
