package betterapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiParams is the default ParamsFunc. It reads path parameters from chi's
// route context; outside a chi router it returns nil and a configured
// context schema sees an empty parameter set.
func chiParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}

// defaultIsSignal recognizes net/http's abort signal, the one control-flow
// marker the standard server contract defines. Host frameworks with their
// own markers plug in via WithControlSignal.
func defaultIsSignal(err error) bool {
	return errors.Is(err, http.ErrAbortHandler)
}
