// Package service provides business logic for the application.
//
// Services take an explicit actor on every operation, consult the authz
// policy before touching a store, and re-read the target row immediately
// before each decision so authorization never runs against stale data.
// Failures are returned as typed errors; no operation partially commits.
package service

import (
	"errors"
	"strings"
)

// Errors shared across services.
var (
	// ErrForbidden indicates the actor is authenticated but not permitted
	// to perform the operation. All policy denials map to this one error.
	ErrForbidden = errors.New("forbidden")

	// ErrUserNotFound indicates a referenced user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError reports missing or malformed required fields.
type ValidationError struct {
	Fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// newValidationError builds a ValidationError for the given field names.
func newValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
