package betterapi

import (
	"context"
	"net/http"
	"time"
)

// Context is the cumulative middleware context threaded through the pipeline.
// It starts empty for every request and grows as middlewares return partial
// contexts, which are shallow-merged on top of it (later keys win).
type Context map[string]any

// Value returns the value stored under key, or nil if absent.
func (c Context) Value(key string) any {
	if c == nil {
		return nil
	}
	return c[key]
}

// Input carries everything a middleware or handler needs for one request:
// the validated outputs of the configured schemas, the cumulative middleware
// context, and the raw request handle passed through unchanged.
//
// Context, Query, and Body are nil when the corresponding schema was never
// configured on the builder.
type Input struct {
	Context any           // validated path parameters
	Query   any           // validated query parameters
	Body    any           // validated request payload
	Ctx     Context       // cumulative middleware context
	Request *http.Request // raw request, untouched by the pipeline
}

// Input delegates context.Context to the request's context so handlers and
// middlewares can pass it straight into blocking calls.

// Deadline delegates to Request.Context().
func (in Input) Deadline() (deadline time.Time, ok bool) {
	return in.Request.Context().Deadline()
}

// Done delegates to Request.Context().
func (in Input) Done() <-chan struct{} {
	return in.Request.Context().Done()
}

// Err delegates to Request.Context().
func (in Input) Err() error {
	return in.Request.Context().Err()
}

// Value delegates to Request.Context(). Middleware context values live in
// Input.Ctx, not here.
func (in Input) Value(key any) any {
	return in.Request.Context().Value(key)
}

// HandlerFunc is the terminal handler of a compiled pipeline. The returned
// value is encoded as JSON unless it implements Response, in which case it is
// rendered unchanged with its own status.
type HandlerFunc func(in Input) (any, error)

// Middleware is a single pipeline step. It receives the input assembled so
// far and returns a partial context that is merged into Input.Ctx before the
// next step runs. Returning an error stops the pipeline immediately.
type Middleware func(in Input) (Context, error)

// FailureHook is invoked at most once per request, only when an unclassified
// error reaches the top of the pipeline. It exists purely for side effects
// such as logging or metrics; its panics are swallowed and its return is
// ignored. Deliberately raised Error values never trigger it.
type FailureHook func(r *http.Request, err error)

// ParamsFunc extracts router-supplied path parameters from a request.
// The default implementation reads chi's route context.
type ParamsFunc func(r *http.Request) map[string]string

// Response renders HTTP responses. Implementations should set headers,
// status, and body. A handler result implementing Response bypasses the
// pipeline's JSON encoding entirely.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

var _ context.Context = Input{}
