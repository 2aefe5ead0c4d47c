package validator

import "strings"

// ValidationError describes a single failed rule on a single field.
// Code is the machine-readable rule identifier (usually the rule name).
type ValidationError struct {
	Field   string
	Message string
	Code    string
}

// ValidationErrors collects all failed rules for one struct, in field order.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Field + ": " + ve.Message
	}
	return strings.Join(parts, "; ")
}

// Rule pairs a check with the error reported when the check fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}
