package betterapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/programming-with-ia/betterapi/core/schema"
)

// Error is a structured failure that maps directly to a response. Raising
// one from a middleware or handler short-circuits the pipeline and responds
// with {message, type, issues?} at the declared status code.
//
// Error values are immutable: the With* methods return modified copies.
type Error struct {
	Status  int            `json:"-"`                // HTTP status code (not in JSON)
	Type    string         `json:"type"`             // Machine-readable type tag
	Message string         `json:"message"`          // Human-readable message
	Issues  []schema.Issue `json:"issues,omitempty"` // Optional validation issues
}

// NewError creates an Error with the default 500 status and
// INTERNAL_SERVER_ERROR type tag.
func NewError(message string) Error {
	return Error{
		Status:  http.StatusInternalServerError,
		Type:    "INTERNAL_SERVER_ERROR",
		Message: message,
	}
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// WithStatus returns a copy of the error with a custom status code.
func (e Error) WithStatus(status int) Error {
	e.Status = status
	return e
}

// WithIssues returns a copy of the error carrying validation issues.
func (e Error) WithIssues(issues ...schema.Issue) Error {
	e.Issues = issues
	return e
}

// Predefined errors. The pipeline raises ErrValidation and ErrInvalidBody
// itself; the rest are conveniences for handlers and middlewares.
var (
	ErrBadRequest          = Error{Status: http.StatusBadRequest, Type: "BAD_REQUEST", Message: http.StatusText(http.StatusBadRequest)}
	ErrUnauthorized        = Error{Status: http.StatusUnauthorized, Type: "UNAUTHORIZED", Message: http.StatusText(http.StatusUnauthorized)}
	ErrForbidden           = Error{Status: http.StatusForbidden, Type: "FORBIDDEN", Message: http.StatusText(http.StatusForbidden)}
	ErrNotFound            = Error{Status: http.StatusNotFound, Type: "NOT_FOUND", Message: http.StatusText(http.StatusNotFound)}
	ErrConflict            = Error{Status: http.StatusConflict, Type: "CONFLICT", Message: http.StatusText(http.StatusConflict)}
	ErrUnprocessableEntity = Error{Status: http.StatusUnprocessableEntity, Type: "UNPROCESSABLE_ENTITY", Message: http.StatusText(http.StatusUnprocessableEntity)}
	ErrTooManyRequests     = Error{Status: http.StatusTooManyRequests, Type: "TOO_MANY_REQUESTS", Message: http.StatusText(http.StatusTooManyRequests)}
	ErrValidation          = Error{Status: http.StatusBadRequest, Type: "VALIDATION_ERROR", Message: "Validation failed."}
	ErrInvalidBody         = Error{Status: http.StatusBadRequest, Type: "INVALID_BODY", Message: "Invalid request body."}
	ErrInternal            = Error{Status: http.StatusInternalServerError, Type: "INTERNAL_SERVER_ERROR", Message: "An internal server error occurred."}
)

// toError converts a recovered panic value to an error.
func toError(v any) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	default:
		return fmt.Errorf("panic: %v", e)
	}
}
