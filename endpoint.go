package betterapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/programming-with-ia/betterapi/core/logger"
	"github.com/programming-with-ia/betterapi/core/schema"
)

// MaxBodySize caps how much of a request payload the pipeline reads before
// handing it to the body schema (1 MB).
const MaxBodySize = 1 << 20

// compile snapshots the builder configuration and produces the entry point
// the router invokes per request. The snapshot is a value copy, so later
// configuration of the same base builder never affects compiled endpoints.
func (b Builder) compile(method string, h HandlerFunc) http.HandlerFunc {
	cfg := b
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.serve(method, h, w, r)
	}
}

// serve runs one request through the pipeline: validate, middleware chain,
// handler, response encoding. Every failure funnels through fail.
func (cfg Builder) serve(method string, h HandlerFunc, w http.ResponseWriter, r *http.Request) {
	defer func() {
		if p := recover(); p != nil {
			err := toError(p)
			if cfg.isSignal(err) {
				// Control-flow signal: re-raise with identity intact.
				panic(p)
			}
			cfg.fail(w, r, err)
		}
	}()

	in := Input{Ctx: Context{}, Request: r}

	if cfg.contextSchema != nil {
		v, err := cfg.contextSchema.Validate(r.Context(), cfg.params(r))
		if err != nil {
			cfg.fail(w, r, err)
			return
		}
		in.Context = v
	}

	if cfg.querySchema != nil {
		v, err := cfg.querySchema.Validate(r.Context(), r.URL.Query())
		if err != nil {
			cfg.fail(w, r, err)
			return
		}
		in.Query = v
	}

	// Body validation applies only to methods whose semantics imply a
	// payload. Without a body schema the payload is not consumed at all,
	// leaving r.Body readable by the handler.
	if methodHasBody(method) && cfg.bodySchema != nil {
		decoded, err := decodeBody(r)
		if err != nil {
			cfg.fail(w, r, ErrInvalidBody)
			return
		}
		v, err := cfg.bodySchema.Validate(r.Context(), decoded)
		if err != nil {
			cfg.fail(w, r, err)
			return
		}
		in.Body = v
	}

	for _, m := range cfg.middlewares {
		partial, err := m(in)
		if err != nil {
			cfg.fail(w, r, err)
			return
		}
		// Shallow merge, later keys win.
		for k, v := range partial {
			in.Ctx[k] = v
		}
	}

	result, err := h(in)
	if err != nil {
		cfg.fail(w, r, err)
		return
	}

	// A fully-formed response passes through with its own status.
	if resp, ok := result.(Response); ok {
		if err := resp.Render(w, r); err != nil {
			cfg.fail(w, r, err)
		}
		return
	}

	status := http.StatusOK
	if method == http.MethodPost {
		status = http.StatusCreated
	}
	cfg.writeJSON(w, r, status, result)
}

// fail classifies an error and maps it to a response. Control-flow signals
// are re-raised untouched; Error values respond verbatim; validation errors
// become 400s with issues; everything else invokes the failure hook and
// responds with a generic 500, never exposing internal detail.
func (cfg Builder) fail(w http.ResponseWriter, r *http.Request, err error) {
	if cfg.isSignal(err) {
		panic(err)
	}

	var apiErr Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			apiErr.Status = http.StatusInternalServerError
		}
		if apiErr.Type == "" {
			apiErr.Type = "INTERNAL_SERVER_ERROR"
		}
		cfg.writeJSON(w, r, apiErr.Status, apiErr)
		return
	}

	var validationErr *schema.ValidationError
	if errors.As(err, &validationErr) {
		cfg.writeJSON(w, r, ErrValidation.Status, ErrValidation.WithIssues(validationErr.Issues...))
		return
	}

	cfg.invokeHook(r, err)
	cfg.logger.Error("unhandled pipeline error",
		logger.Error(err),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
	)
	cfg.writeJSON(w, r, ErrInternal.Status, ErrInternal)
}

// invokeHook calls the failure hook, swallowing anything it raises so a
// broken hook cannot change the response.
func (cfg Builder) invokeHook(r *http.Request, err error) {
	if cfg.failed == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			cfg.logger.Error("failure hook panicked",
				logger.Error(toError(p)),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
			)
		}
	}()
	cfg.failed(r, err)
}

func (cfg Builder) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone; the most we can do is log.
		cfg.logger.Error("failed to encode response",
			logger.Error(err),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
		)
	}
}

// decodeBody reads and parses the request payload as JSON. The decoded value
// is what the body schema validates.
func decodeBody(r *http.Request) (any, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxBodySize {
		return nil, errors.New("request body too large")
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
