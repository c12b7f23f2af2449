package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrReferenceData marks a missing or malformed reference table.
	// Startup must abort when it is returned.
	ErrReferenceData = errors.New("invalid reference data")
)

// Per-word exclusion causes. A word failing with one of these is dropped
// from the build and counted, it never aborts the build.
var (
	ErrNoVowel             = errors.New("pronunciation has no vowel")
	ErrUnknownPhoneme      = errors.New("unknown phoneme")
	ErrLengthMismatch      = errors.New("syllable and pronunciation lengths differ")
	ErrAlignmentIncomplete = errors.New("alignment incomplete")
)

// IsExclusion reports whether err is a per-word exclusion cause.
func IsExclusion(err error) bool {
	return errors.Is(err, ErrNoVowel) ||
		errors.Is(err, ErrUnknownPhoneme) ||
		errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrAlignmentIncomplete)
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
