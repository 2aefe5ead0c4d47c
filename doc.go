// Package betterapi is a declarative builder for HTTP request pipelines.
// A pipeline validates structured input (path parameters, query parameters,
// JSON body) against schemas, threads an accumulating context through an
// ordered middleware chain, invokes a terminal handler, and normalizes every
// outcome into a uniform JSON response shape.
//
// The builder itself owns no transport: it compiles plain http.HandlerFunc
// entry points that any router can mount. Path parameters are read from
// chi's route context by default and the extractor is pluggable via
// WithParams.
//
// # Building a pipeline
//
// Every configuration call returns a new Builder value, so partially
// configured builders can be branched and reused safely:
//
//	type userParams struct {
//		ID string `path:"id" validate:"required;uuid"`
//	}
//
//	type createUser struct {
//		Email string `json:"email" validate:"required;email"`
//		Name  string `json:"name" validate:"required;min:2"`
//	}
//
//	base := betterapi.New(betterapi.WithLogger(log)).
//		Use(middleware.RequestID())
//
//	r := chi.NewRouter()
//	r.Get("/users/{id}", base.
//		Context(schema.Struct[userParams]()).
//		Get(showUser))
//	r.Post("/users", base.
//		Body(schema.Struct[createUser]()).
//		Post(createUserHandler))
//
// Handlers receive an Input with the validated values and the cumulative
// middleware context, and return a plain value (encoded as JSON, 201 for
// POST and 200 otherwise), a Response for full control, or an error.
//
// # Failure shape
//
// Every failure produces {"message": ..., "type": ..., "issues": [...]}:
// schema rejections respond 400 VALIDATION_ERROR with the schema's issues,
// an unparsable body with a body schema configured responds 400
// INVALID_BODY, a raised Error responds with its own status and type, and
// anything unclassified responds with a generic 500 after invoking the
// Failed hook. Control-flow signals of the host server (http.ErrAbortHandler
// by default) pass through untouched.
//
// # Packages
//
//	github.com/programming-with-ia/betterapi/core/schema    - Validation boundary: Schema, issues, Struct[T]
//	github.com/programming-with-ia/betterapi/core/binder    - Reflection binding of request data onto structs
//	github.com/programming-with-ia/betterapi/core/validator - Rule-based struct validation via `validate` tags
//	github.com/programming-with-ia/betterapi/core/config    - Type-safe environment variable loading
//	github.com/programming-with-ia/betterapi/core/logger    - Structured logging helpers built on slog
//	github.com/programming-with-ia/betterapi/middleware     - Ready-made pipeline steps (request ID, client IP)
package betterapi
