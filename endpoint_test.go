package betterapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programming-with-ia/betterapi"
	"github.com/programming-with-ia/betterapi/core/schema"
)

type userParams struct {
	ID string `path:"id" validate:"required;uuid"`
}

type listQuery struct {
	Limit int `query:"limit" validate:"max:10"`
}

type createUser struct {
	Email string `json:"email" validate:"required;email"`
	Name  string `json:"name" validate:"required;min:2"`
}

type errorBody struct {
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Issues  []schema.Issue `json:"issues"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPipeline_ContextValidation(t *testing.T) {
	t.Parallel()

	handlerCalled := false
	endpoint := betterapi.New().
		Context(schema.Struct[userParams]()).
		Get(func(in betterapi.Input) (any, error) {
			handlerCalled = true
			params := in.Context.(userParams)
			return map[string]string{"id": params.ID}, nil
		})

	r := chi.NewRouter()
	r.Get("/users/{id}", endpoint)

	t.Run("invalid param", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", body.Type)
		require.NotEmpty(t, body.Issues)
		assert.Equal(t, "ID", body.Issues[0].Path)
		assert.Equal(t, "uuid", body.Issues[0].Code)
		assert.False(t, handlerCalled)
	})

	t.Run("valid param", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/2a9f65e9-54ea-4b86-9a4f-57989f04e2a4", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, handlerCalled)
		assert.Contains(t, rec.Body.String(), "2a9f65e9-54ea-4b86-9a4f-57989f04e2a4")
	})
}

func TestPipeline_QueryValidation(t *testing.T) {
	t.Parallel()

	endpoint := betterapi.New().
		Query(schema.Struct[listQuery]()).
		Get(func(in betterapi.Input) (any, error) {
			return in.Query.(listQuery), nil
		})

	t.Run("unparsable value", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", body.Type)
		require.NotEmpty(t, body.Issues)
		assert.Equal(t, "limit", body.Issues[0].Path)
		assert.Equal(t, "invalid_type", body.Issues[0].Code)
	})

	t.Run("rule violation", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/?limit=50", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		require.NotEmpty(t, body.Issues)
		assert.Equal(t, "max", body.Issues[0].Code)
	})

	t.Run("valid query", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/?limit=5", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"Limit":5}`, rec.Body.String())
	})
}

func TestPipeline_BodyValidation(t *testing.T) {
	t.Parallel()

	t.Run("unparsable body without schema is ignored", func(t *testing.T) {
		t.Parallel()

		endpoint := betterapi.New().Post(func(in betterapi.Input) (any, error) {
			assert.Nil(t, in.Body)
			return map[string]bool{"ok": true}, nil
		})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json")))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("unparsable body with schema raises INVALID_BODY", func(t *testing.T) {
		t.Parallel()

		handlerCalled := false
		endpoint := betterapi.New().
			Body(schema.Struct[createUser]()).
			Post(func(in betterapi.Input) (any, error) {
				handlerCalled = true
				return nil, nil
			})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "INVALID_BODY", body.Type)
		assert.False(t, handlerCalled)
	})

	t.Run("schema rejection raises VALIDATION_ERROR", func(t *testing.T) {
		t.Parallel()

		endpoint := betterapi.New().
			Body(schema.Struct[createUser]()).
			Post(func(in betterapi.Input) (any, error) {
				return nil, nil
			})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","name":"x"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", body.Type)

		codes := make([]string, 0, len(body.Issues))
		for _, issue := range body.Issues {
			codes = append(codes, issue.Code)
		}
		assert.Contains(t, codes, "email")
		assert.Contains(t, codes, "min")
	})

	t.Run("valid body reaches the handler typed", func(t *testing.T) {
		t.Parallel()

		endpoint := betterapi.New().
			Body(schema.Struct[createUser]()).
			Post(func(in betterapi.Input) (any, error) {
				req := in.Body.(createUser)
				return req, nil
			})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","name":"Ada"}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"email":"a@b.co","name":"Ada"}`, rec.Body.String())
	})

	t.Run("body schema never runs for GET", func(t *testing.T) {
		t.Parallel()

		endpoint := betterapi.New().
			Body(schema.Struct[createUser]()).
			Get(func(in betterapi.Input) (any, error) {
				assert.Nil(t, in.Body)
				return "ok", nil
			})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/", strings.NewReader("{not json")))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPipeline_MiddlewareChain(t *testing.T) {
	t.Parallel()

	t.Run("ordered merge with later-wins", func(t *testing.T) {
		t.Parallel()

		var order []string

		m1 := func(in betterapi.Input) (betterapi.Context, error) {
			order = append(order, "m1")
			assert.Empty(t, in.Ctx)
			return betterapi.Context{"a": 1, "b": "m1"}, nil
		}
		m2 := func(in betterapi.Input) (betterapi.Context, error) {
			order = append(order, "m2")
			// m2 observes the merged output of m1.
			assert.Equal(t, 1, in.Ctx["a"])
			assert.Equal(t, "m1", in.Ctx["b"])
			return betterapi.Context{"b": "m2", "c": true}, nil
		}

		endpoint := betterapi.New().Use(m1).Use(m2).
			Get(func(in betterapi.Input) (any, error) {
				order = append(order, "handler")
				assert.Equal(t, betterapi.Context{"a": 1, "b": "m2", "c": true}, in.Ctx)
				return "ok", nil
			})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"m1", "m2", "handler"}, order)
	})

	t.Run("error stops the chain", func(t *testing.T) {
		t.Parallel()

		m2Called := false
		handlerCalled := false

		endpoint := betterapi.New().
			Use(func(in betterapi.Input) (betterapi.Context, error) {
				return nil, betterapi.ErrUnauthorized
			}).
			Use(func(in betterapi.Input) (betterapi.Context, error) {
				m2Called = true
				return nil, nil
			}).
			Get(func(in betterapi.Input) (any, error) {
				handlerCalled = true
				return nil, nil
			})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Type)
		assert.False(t, m2Called)
		assert.False(t, handlerCalled)
	})

	t.Run("fresh accumulator per request", func(t *testing.T) {
		t.Parallel()

		endpoint := betterapi.New().
			Use(func(in betterapi.Input) (betterapi.Context, error) {
				assert.Empty(t, in.Ctx)
				return betterapi.Context{"seen": true}, nil
			}).
			Get(func(in betterapi.Input) (any, error) {
				return "ok", nil
			})

		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestPipeline_FailureClassification(t *testing.T) {
	t.Parallel()

	t.Run("typed error bypasses the hook", func(t *testing.T) {
		t.Parallel()

		hookCalls := 0
		endpoint := betterapi.New().
			Failed(func(r *http.Request, err error) { hookCalls++ }).
			Get(func(in betterapi.Input) (any, error) {
				return nil, betterapi.ErrForbidden.WithMessage("No entry.")
			})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "FORBIDDEN", body.Type)
		assert.Equal(t, "No entry.", body.Message)
		assert.Zero(t, hookCalls)
	})

	t.Run("validation error bypasses the hook", func(t *testing.T) {
		t.Parallel()

		hookCalls := 0
		endpoint := betterapi.New().
			Failed(func(r *http.Request, err error) { hookCalls++ }).
			Query(schema.Struct[listQuery]()).
			Get(func(in betterapi.Input) (any, error) { return nil, nil })

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/?limit=99", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, hookCalls)
	})

	t.Run("unclassified error invokes the hook once", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("database exploded")
		var hookErrs []error
		endpoint := betterapi.New().
			Failed(func(r *http.Request, err error) { hookErrs = append(hookErrs, err) }).
			Get(func(in betterapi.Input) (any, error) {
				return nil, boom
			})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Type)
		assert.Equal(t, "An internal server error occurred.", body.Message)
		assert.NotContains(t, rec.Body.String(), "database exploded")

		require.Len(t, hookErrs, 1)
		assert.Same(t, boom, hookErrs[0])
	})

	t.Run("panicking hook does not change the response", func(t *testing.T) {
		t.Parallel()

		endpoint := betterapi.New().
			Failed(func(r *http.Request, err error) { panic("hook gone wrong") }).
			Get(func(in betterapi.Input) (any, error) {
				return nil, errors.New("boom")
			})

		rec := httptest.NewRecorder()
		require.NotPanics(t, func() {
			endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "An internal server error occurred.", decodeError(t, rec).Message)
	})

	t.Run("handler panic becomes a generic 500", func(t *testing.T) {
		t.Parallel()

		hookCalls := 0
		endpoint := betterapi.New().
			Failed(func(r *http.Request, err error) { hookCalls++ }).
			Get(func(in betterapi.Input) (any, error) {
				panic("unexpected")
			})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, 1, hookCalls)
	})
}

func TestPipeline_ControlSignal(t *testing.T) {
	t.Parallel()

	t.Run("returned signal re-raised with identity intact", func(t *testing.T) {
		t.Parallel()

		hookCalls := 0
		endpoint := betterapi.New().
			Failed(func(r *http.Request, err error) { hookCalls++ }).
			Get(func(in betterapi.Input) (any, error) {
				return nil, http.ErrAbortHandler
			})

		rec := httptest.NewRecorder()
		recovered := capturePanic(func() {
			endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		})

		require.NotNil(t, recovered)
		err, ok := recovered.(error)
		require.True(t, ok)
		assert.Same(t, http.ErrAbortHandler, err)
		assert.Zero(t, hookCalls)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("panicked signal re-raised with identity intact", func(t *testing.T) {
		t.Parallel()

		endpoint := betterapi.New().Get(func(in betterapi.Input) (any, error) {
			panic(http.ErrAbortHandler)
		})

		recovered := capturePanic(func() {
			endpoint(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})

		require.NotNil(t, recovered)
		assert.Same(t, http.ErrAbortHandler, recovered.(error))
	})

	t.Run("custom signal predicate", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("host: not found, fall through")
		endpoint := betterapi.New(
			betterapi.WithControlSignal(func(err error) bool { return errors.Is(err, sentinel) }),
		).Get(func(in betterapi.Input) (any, error) {
			return nil, sentinel
		})

		recovered := capturePanic(func() {
			endpoint(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})

		require.NotNil(t, recovered)
		assert.Same(t, sentinel, recovered.(error))
	})
}

func TestPipeline_ResponseEncoding(t *testing.T) {
	t.Parallel()

	t.Run("plain value statuses per method", func(t *testing.T) {
		t.Parallel()

		handler := func(in betterapi.Input) (any, error) {
			return map[string]bool{"ok": true}, nil
		}

		tests := []struct {
			method   string
			endpoint http.HandlerFunc
			want     int
		}{
			{http.MethodGet, betterapi.New().Get(handler), http.StatusOK},
			{http.MethodPost, betterapi.New().Post(handler), http.StatusCreated},
			{http.MethodPut, betterapi.New().Put(handler), http.StatusOK},
			{http.MethodPatch, betterapi.New().Patch(handler), http.StatusOK},
			{http.MethodDelete, betterapi.New().Delete(handler), http.StatusOK},
		}

		for _, tt := range tests {
			t.Run(tt.method, func(t *testing.T) {
				rec := httptest.NewRecorder()
				tt.endpoint(rec, httptest.NewRequest(tt.method, "/", nil))

				assert.Equal(t, tt.want, rec.Code)
				assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
			})
		}
	})

	t.Run("response value passes through with its own status", func(t *testing.T) {
		t.Parallel()

		endpoint := betterapi.New().Post(func(in betterapi.Input) (any, error) {
			return betterapi.JSONWithStatus(map[string]string{"state": "brewing"}, http.StatusTeapot), nil
		})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.JSONEq(t, `{"state":"brewing"}`, rec.Body.String())
	})

	t.Run("redirect response", func(t *testing.T) {
		t.Parallel()

		endpoint := betterapi.New().Get(func(in betterapi.Input) (any, error) {
			return betterapi.RedirectSeeOther("/login"), nil
		})

		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestPipeline_AsyncSchema(t *testing.T) {
	t.Parallel()

	// A schema is free to block on the request context; cancellation
	// surfaces like any other failure.
	slow := schema.Func(func(ctx context.Context, data any) (any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			return "validated", nil
		}
	})

	endpoint := betterapi.New().
		Query(slow).
		Get(func(in betterapi.Input) (any, error) {
			return in.Query, nil
		})

	rec := httptest.NewRecorder()
	endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"validated"`, rec.Body.String())
}

func capturePanic(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}
