// Package binder maps raw request data onto Go structs using reflection.
// It covers the three sources the pipeline validates: path parameters,
// query parameters, and JSON payloads.
//
// Field names come from struct tags (`path:"id"`, `query:"page"`), falling
// back to the lowercase field name when no tag is present. A tag value of
// "-" skips the field.
package binder

import (
	"net/url"
)

// Query binds URL query values onto v, which must be a non-nil pointer to
// struct. Multi-value parameters bind to slices; comma-separated values in a
// single parameter are split the same way.
func Query(values url.Values, v any) error {
	return bindToStruct(v, "query", values, ErrQueryBinding)
}

// Path binds router-supplied path parameters onto v.
func Path(params map[string]string, v any) error {
	values := make(map[string][]string, len(params))
	for name, value := range params {
		values[name] = []string{value}
	}
	return bindToStruct(v, "path", values, ErrPathBinding)
}
