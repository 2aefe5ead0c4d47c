package betterapi

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/programming-with-ia/betterapi/core/schema"
)

// Builder accumulates the configuration of a request pipeline: which schemas
// validate the input, which middlewares run, and what happens on failure.
//
// Builder is a value type and every configuration method returns a new
// Builder, so partially configured builders can be shared and branched
// freely:
//
//	base := betterapi.New().Use(middleware.RequestID())
//	listUsers := base.Query(schema.Struct[ListQuery]()).Get(list)
//	createUser := base.Body(schema.Struct[CreateUser]()).Post(create)
//
// The terminal Get/Post/Put/Patch/Delete methods compile an http.HandlerFunc
// and leave the builder untouched.
type Builder struct {
	contextSchema schema.Schema
	querySchema   schema.Schema
	bodySchema    schema.Schema
	middlewares   []Middleware
	failed        FailureHook
	params        ParamsFunc
	isSignal      func(error) bool
	logger        *slog.Logger
}

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithLogger sets the logger used for unclassified failures and misbehaving
// failure hooks. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithParams replaces the path-parameter extractor. The default reads chi's
// route context and falls back to an empty map outside a chi router.
func WithParams(fn ParamsFunc) Option {
	return func(b *Builder) {
		if fn != nil {
			b.params = fn
		}
	}
}

// WithControlSignal replaces the predicate that recognizes host-framework
// control-flow signals. Errors matching the predicate bypass all pipeline
// error handling and are re-raised unchanged for the host server. The
// default matches http.ErrAbortHandler.
func WithControlSignal(fn func(error) bool) Option {
	return func(b *Builder) {
		if fn != nil {
			b.isSignal = fn
		}
	}
}

// New creates a Builder with no schemas, no middlewares, and no failure
// hook.
func New(opts ...Option) Builder {
	b := Builder{
		params:   chiParams,
		isSignal: defaultIsSignal,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Context installs or replaces the path-parameter schema.
func (b Builder) Context(s schema.Schema) Builder {
	b.contextSchema = s
	return b
}

// Query installs or replaces the query-parameter schema.
func (b Builder) Query(s schema.Schema) Builder {
	b.querySchema = s
	return b
}

// Body installs or replaces the request payload schema. The schema only runs
// for POST, PUT, and PATCH; other methods never carry a validated body.
func (b Builder) Body(s schema.Schema) Builder {
	b.bodySchema = s
	return b
}

// Use appends a middleware to the chain. Middlewares run in insertion order,
// strictly sequentially, and their partial contexts are merged with
// later-wins semantics.
func (b Builder) Use(m Middleware) Builder {
	// Copy-on-append: sibling builders derived from the same base must
	// never observe each other's middlewares through a shared array.
	middlewares := make([]Middleware, len(b.middlewares), len(b.middlewares)+1)
	copy(middlewares, b.middlewares)
	b.middlewares = append(middlewares, m)
	return b
}

// Failed installs or replaces the failure hook. The hook fires at most once
// per request and only for unclassified errors; deliberately raised Error
// values never reach it.
func (b Builder) Failed(hook FailureHook) Builder {
	b.failed = hook
	return b
}

// Get compiles an entry point for GET requests.
func (b Builder) Get(h HandlerFunc) http.HandlerFunc {
	return b.compile(http.MethodGet, h)
}

// Post compiles an entry point for POST requests. Plain handler results are
// encoded with status 201.
func (b Builder) Post(h HandlerFunc) http.HandlerFunc {
	return b.compile(http.MethodPost, h)
}

// Put compiles an entry point for PUT requests.
func (b Builder) Put(h HandlerFunc) http.HandlerFunc {
	return b.compile(http.MethodPut, h)
}

// Patch compiles an entry point for PATCH requests.
func (b Builder) Patch(h HandlerFunc) http.HandlerFunc {
	return b.compile(http.MethodPatch, h)
}

// Delete compiles an entry point for DELETE requests.
func (b Builder) Delete(h HandlerFunc) http.HandlerFunc {
	return b.compile(http.MethodDelete, h)
}
