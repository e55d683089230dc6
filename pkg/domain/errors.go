package domain

import (
	"errors"
	"fmt"
)

// ValidationError is a local, pre-network failure.
// It never reaches the lookup client.
type ValidationError struct {
	Field  string // Offending field, empty when the failure spans several fields
	Reason string // Human-readable reason
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is reports whether target is a ValidationError with the same field and reason.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Field == t.Field && e.Reason == t.Reason
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ErrMissingFields is returned when origin, destination or a required date is absent.
var ErrMissingFields = &ValidationError{Reason: "missing required fields"}

// ErrInvalidSelection is returned when a suggestion index is out of range.
var ErrInvalidSelection = errors.New("invalid suggestion selection")

// RemoteError reports an upstream or transport failure.
type RemoteError struct {
	Message    string // Message extracted from the upstream payload, or a generic description
	StatusCode int    // HTTP status, 0 for transport failures
	Err        error  // Underlying cause, if any
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsRemote reports whether err is (or wraps) a RemoteError.
func IsRemote(err error) bool {
	var r *RemoteError
	return errors.As(err, &r)
}
