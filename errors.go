package recordkit

import (
	"errors"
	"fmt"
)

// Error types
const (
	ErrTypeValidation             = "ValidationError"
	ErrTypeConditionalCheckFailed = "ConditionalCheckFailedException"
	ErrTypeStore                  = "StoreError"
)

// ResolverError is the caller-visible failure of a request. Type and Message
// come verbatim from the store for store failures.
type ResolverError struct {
	Type    string `json:"type"`
	Message string `json:"message"`

	// Partial is whatever item the store returned alongside the failure
	Partial Item `json:"-"`

	cause error
}

// Error implements the error interface
func (e *ResolverError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying store error, if any
func (e *ResolverError) Unwrap() error {
	return e.cause
}

// NewValidationError creates an error for malformed caller input
func NewValidationError(format string, args ...interface{}) *ResolverError {
	return &ResolverError{
		Type:    ErrTypeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsResolverError extracts a *ResolverError from err
func AsResolverError(err error) (*ResolverError, bool) {
	var re *ResolverError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsValidationError checks if err was rejected before reaching the store
func IsValidationError(err error) bool {
	re, ok := AsResolverError(err)
	return ok && re.Type == ErrTypeValidation
}

// IsConditionalCheckFailed checks if err is a rejected conditional write
func IsConditionalCheckFailed(err error) bool {
	re, ok := AsResolverError(err)
	return ok && re.Type == ErrTypeConditionalCheckFailed
}
