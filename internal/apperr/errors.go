// Package apperr holds the error taxonomy shared by services and handlers.
//
// Handlers translate these to HTTP statuses: ErrValidation -> 400,
// ErrNotFound -> 404. Anything else is treated as a storage/internal
// failure, logged, and returned as a generic 500.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or invalid required input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist in the
	// requesting organization's scope.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validation builds a required-field error.
func Validation(field string) error {
	return &ValidationError{Field: field}
}

// Validationf builds a validation error with a custom message.
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound builds a missing-entity error.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a missing-entity failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
