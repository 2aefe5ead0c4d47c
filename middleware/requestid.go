package middleware

import (
	"github.com/google/uuid"

	"github.com/programming-with-ia/betterapi"
)

// requestIDKey is the cumulative-context key for request IDs.
const requestIDKey = "request_id"

// RequestIDConfig configures the request ID step.
type RequestIDConfig struct {
	// Generator creates new request IDs (default: UUID v4).
	Generator func() string
	// HeaderName is the incoming header checked when UseExisting is set
	// (default: "X-Request-ID").
	HeaderName string
	// UseExisting reuses a request ID supplied by the client instead of
	// generating a fresh one.
	UseExisting bool
}

// RequestID assigns a unique identifier to each request for tracing and
// logging, stored under "request_id" in the cumulative context.
func RequestID() betterapi.Middleware {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with custom configuration.
func RequestIDWithConfig(cfg RequestIDConfig) betterapi.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(in betterapi.Input) (betterapi.Context, error) {
		var id string
		if cfg.UseExisting {
			id = in.Request.Header.Get(cfg.HeaderName)
		}
		if id == "" {
			id = cfg.Generator()
		}
		return betterapi.Context{requestIDKey: id}, nil
	}
}

// GetRequestID retrieves the request ID from the cumulative context.
func GetRequestID(ctx betterapi.Context) (string, bool) {
	id, ok := ctx[requestIDKey].(string)
	return id, ok
}
