// Package middleware provides ready-made pipeline steps for the builder's
// Use operation. Each step returns a partial context that the pipeline
// merges into the cumulative request context; handlers read the values back
// through the typed accessors.
package middleware
