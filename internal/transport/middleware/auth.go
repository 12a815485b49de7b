package middleware

import (
	"context"
	"net/http"
	"strings"
)

// TokenSource returns the current bearer token, "" when none is available.
type TokenSource func(ctx context.Context) string

// BearerAuth attaches "Authorization: Bearer <token>" to every request that
// does not already carry credentials. Requests go out anonymous when the
// source has no token.
func BearerAuth(source TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("Authorization") != "" {
				return next.RoundTrip(r)
			}
			token := strings.TrimSpace(source(r.Context()))
			if token == "" {
				return next.RoundTrip(r)
			}
			out := cloneRequest(r)
			out.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(out)
		})
	}
}
