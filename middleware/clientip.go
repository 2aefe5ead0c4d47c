package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/programming-with-ia/betterapi"
)

// clientIPKey is the cumulative-context key for client IPs.
const clientIPKey = "client_ip"

// ClientIP extracts the real client IP from proxy headers (X-Forwarded-For,
// then X-Real-IP) falling back to the connection's remote address, and
// stores it under "client_ip" in the cumulative context.
func ClientIP() betterapi.Middleware {
	return func(in betterapi.Input) (betterapi.Context, error) {
		return betterapi.Context{clientIPKey: extractIP(in.Request)}, nil
	}
}

// GetClientIP retrieves the client IP from the cumulative context.
func GetClientIP(ctx betterapi.Context) (string, bool) {
	ip, ok := ctx[clientIPKey].(string)
	return ip, ok
}

func extractIP(r *http.Request) string {
	// X-Forwarded-For holds a comma-separated chain; the first entry is
	// the originating client.
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		if net.ParseIP(real) != nil {
			return real
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
