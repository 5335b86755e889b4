// internal/models/validation.go
package models

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel every engine validation failure wraps.
var ErrInvalidInput = errors.New("INVALID_INPUT")

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// withPrefix nests a field path, e.g. "professionals[2].location.lat".
func withPrefix(prefix string, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &ValidationError{Field: prefix + "." + ve.Field, Reason: ve.Reason}
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
