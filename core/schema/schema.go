// Package schema defines the validation boundary of the pipeline. A Schema
// wraps any collaborator that can turn raw request data (path parameters,
// query values, or a decoded JSON payload) into validated, coerced output or
// a structured list of issues.
package schema

import (
	"context"
	"fmt"
	"strings"
)

// Schema validates raw data and returns the validated (possibly coerced)
// value. Validation failures are reported as *ValidationError; any other
// error is treated as an internal failure by the pipeline.
//
// Implementations may block (e.g. remote validation); the request context is
// passed through for cancellation.
type Schema interface {
	Validate(ctx context.Context, data any) (any, error)
}

// Func adapts a plain function to the Schema interface.
type Func func(ctx context.Context, data any) (any, error)

// Validate implements Schema.
func (f Func) Validate(ctx context.Context, data any) (any, error) {
	return f(ctx, data)
}

// Issue is a single structured validation problem. Issues are passed through
// unchanged to the response body and to any failure hook.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationError carries the ordered list of issues a schema reported.
type ValidationError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	paths := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			paths = append(paths, issue.Path)
		}
	}
	if len(paths) == 0 {
		return fmt.Sprintf("validation failed: %d issue(s)", len(e.Issues))
	}
	return "validation failed: " + strings.Join(paths, ", ")
}
