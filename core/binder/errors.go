package binder

import (
	"errors"
	"fmt"
)

// Sentinel errors identify which source failed to bind. Field-level detail
// travels in *FieldError, which wraps one of these.
var (
	// ErrQueryBinding indicates query parameter conversion failed.
	ErrQueryBinding = errors.New("failed to bind query parameters")

	// ErrPathBinding indicates path parameter conversion failed.
	ErrPathBinding = errors.New("failed to bind path parameters")

	// ErrJSONBinding indicates the JSON payload could not be decoded into
	// the target struct.
	ErrJSONBinding = errors.New("failed to bind JSON body")

	// ErrInvalidTarget indicates the bind target is not a non-nil pointer
	// to struct. This is a programming error, not a request error.
	ErrInvalidTarget = errors.New("bind target must be a non-nil pointer to struct")
)

// FieldError reports a conversion failure for a single field. Field holds
// the parameter name as it appears on the wire (the tag name, not the Go
// field name).
type FieldError struct {
	Field  string
	Reason string
	source error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", e.source, e.Field, e.Reason)
}

// Unwrap exposes the source sentinel for errors.Is checks.
func (e *FieldError) Unwrap() error {
	return e.source
}
