package schema

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/programming-with-ia/betterapi/core/binder"
	"github.com/programming-with-ia/betterapi/core/validator"
)

// Struct returns a Schema that binds raw request data onto a fresh value of
// T and then applies the rules declared in its `validate` tags.
//
// The data source decides the binding strategy:
//   - map[string]string (path parameters) binds through `path` tags,
//   - url.Values / map[string][]string (query) binds through `query` tags,
//   - []byte, json.RawMessage, or an already decoded JSON value binds
//     through the standard `json` tags in strict mode.
//
// On success Validate returns the populated T by value; on failure it
// returns *ValidationError with one issue per problem.
func Struct[T any]() Schema {
	return structSchema[T]{}
}

type structSchema[T any] struct{}

func (structSchema[T]) Validate(_ context.Context, data any) (any, error) {
	var dst T

	switch d := data.(type) {
	case nil:
		// Nothing to bind; rules still run against the zero value so
		// required fields are reported.
	case map[string]string:
		if err := binder.Path(d, &dst); err != nil {
			return nil, bindingIssue(err)
		}
	case url.Values:
		if err := binder.Query(d, &dst); err != nil {
			return nil, bindingIssue(err)
		}
	case map[string][]string:
		if err := binder.Query(url.Values(d), &dst); err != nil {
			return nil, bindingIssue(err)
		}
	case []byte:
		if err := binder.JSON(d, &dst); err != nil {
			return nil, bindingIssue(err)
		}
	case json.RawMessage:
		if err := binder.JSON(d, &dst); err != nil {
			return nil, bindingIssue(err)
		}
	default:
		// Decoded JSON value: round-trip through encoding/json so the
		// usual tags and type coercion rules apply.
		raw, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		if err := binder.JSON(raw, &dst); err != nil {
			return nil, bindingIssue(err)
		}
	}

	if err := validator.ValidateStruct(&dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			issues := make([]Issue, len(verrs))
			for i, ve := range verrs {
				issues[i] = Issue{Path: ve.Field, Message: ve.Message, Code: ve.Code}
			}
			return nil, &ValidationError{Issues: issues}
		}
		return nil, err
	}

	return dst, nil
}

// bindingIssue converts a binder failure into a single-issue validation
// error so malformed input surfaces as a 400, not an internal failure.
func bindingIssue(err error) error {
	var fieldErr *binder.FieldError
	if errors.As(err, &fieldErr) {
		return &ValidationError{Issues: []Issue{{
			Path:    fieldErr.Field,
			Message: fieldErr.Reason,
			Code:    "invalid_type",
		}}}
	}
	return &ValidationError{Issues: []Issue{{
		Message: err.Error(),
		Code:    "invalid_input",
	}}}
}
