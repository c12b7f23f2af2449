package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("mode", "must be reading or spelling")

	if got := err.Error(); got != "validation: mode: must be reading or spelling" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "unit", Message: "required"},
		{Field: "mode", Message: "unknown"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrValidation, ErrReferenceData,
		ErrNoVowel, ErrUnknownPhoneme, ErrLengthMismatch, ErrAlignmentIncomplete,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestIsExclusion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no vowel", err: ErrNoVowel, want: true},
		{name: "wrapped unknown phoneme", err: fmt.Errorf("syllabify %q: %w", "XX", ErrUnknownPhoneme), want: true},
		{name: "length mismatch", err: ErrLengthMismatch, want: true},
		{name: "alignment", err: ErrAlignmentIncomplete, want: true},
		{name: "reference data is fatal", err: ErrReferenceData, want: false},
		{name: "not found", err: ErrNotFound, want: false},
		{name: "nil", err: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsExclusion(tt.err); got != tt.want {
				t.Errorf("IsExclusion(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
