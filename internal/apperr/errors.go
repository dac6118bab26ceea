// Package apperr defines the error taxonomy shared by the note and question-answering layers.
package apperr

import (
	"errors"
	"fmt"

	"minibrain/internal/vector"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated is returned when no owning user could be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound is returned when a note is absent or belongs to another user.
	ErrNotFound = errors.New("not found")
	// ErrProvider is returned when the embedding or generation provider fails.
	ErrProvider = errors.New("provider error")
	// ErrDimensionMismatch signals that stored and fresh embeddings disagree in size.
	// It should never happen while the embedding model is held constant.
	ErrDimensionMismatch = vector.ErrDimensionMismatch
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ProviderError wraps a failed call to an external model provider.
type ProviderError struct {
	// Op names the failed call, e.g. "embed note" or "generate answer".
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes every ProviderError match ErrProvider.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
