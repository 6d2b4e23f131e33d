package genetic

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the kind of failure reported by the engine
type ErrorCategory string

const (
	// Fatal to the constructor call
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"

	// Broken assumptions about chromosomes or band layout
	ErrorCategoryPrecondition ErrorCategory = "PRECONDITION"

	// Out-of-range genome access
	ErrorCategoryIndex ErrorCategory = "INDEX"
)

var (
	// ErrInvalidConfiguration is returned when engine parameters are unusable
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrPreconditionViolation is returned when chromosomes or bands break the
	// assumptions of the generation step
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrIndexOutOfRange is the sentinel wrapped by IndexError
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Error represents a categorized engine error with context
type Error struct {
	Category  ErrorCategory
	Operation string
	Message   string
	Context   map[string]interface{}
	sentinel  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s: %s", e.Category, e.Operation, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s %v", e.Category, e.Operation, e.Message, e.Context)
}

// Unwrap returns the category sentinel so errors.Is works on *Error values
func (e *Error) Unwrap() error {
	return e.sentinel
}

// WithContext adds context information to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// newConfigError creates a configuration error for the given operation
func newConfigError(operation, format string, args ...interface{}) *Error {
	return &Error{
		Category:  ErrorCategoryConfiguration,
		Operation: operation,
		Message:   fmt.Sprintf(format, args...),
		sentinel:  ErrInvalidConfiguration,
	}
}

// newPreconditionError creates a precondition error for the given operation
func newPreconditionError(operation, format string, args ...interface{}) *Error {
	return &Error{
		Category:  ErrorCategoryPrecondition,
		Operation: operation,
		Message:   fmt.Sprintf(format, args...),
		sentinel:  ErrPreconditionViolation,
	}
}

// IndexError is the panic value raised on out-of-range genome access.
// It is a programming error and is never recovered by the engine.
type IndexError struct {
	Index  int
	Length int
}

// Error implements the error interface
func (e *IndexError) Error() string {
	return fmt.Sprintf("[%s] genome index %d out of range [0, %d)", ErrorCategoryIndex, e.Index, e.Length)
}

// Unwrap returns ErrIndexOutOfRange
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// IsConfigurationError reports whether err was caused by invalid engine parameters
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsPreconditionError reports whether err was caused by a precondition violation
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrPreconditionViolation)
}
