// Package middleware wraps outbound HTTP transports: request ids, bearer
// credentials, rate limiting and request logging.
package middleware

import "net/http"

// Middleware is a function that wraps an http.RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(r).
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain combines multiple middleware into a single Middleware.
// Middleware are applied in the order given: Chain(mw1, mw2)(rt)
// results in mw1(mw2(rt)), so mw1 executes first (outermost).
func Chain(mws ...Middleware) Middleware {
	return func(final http.RoundTripper) http.RoundTripper {
		if final == nil {
			final = http.DefaultTransport
		}
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// cloneRequest returns a shallow copy of r with its own header map, as
// RoundTrippers must not modify the caller's request.
func cloneRequest(r *http.Request) *http.Request {
	return r.Clone(r.Context())
}
