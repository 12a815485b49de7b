package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/VW-ai/where2meet-client/pkg/ctxutil"
)

const RequestIDHeader = "X-Request-Id"

// RequestID sets X-Request-Id on outgoing requests: the id carried by the
// request context, or a fresh uuid.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}

			id := ctxutil.RequestIDFromCtx(r.Context())
			if id == "" {
				id = uuid.New().String()
			}
			out := cloneRequest(r)
			out.Header.Set(RequestIDHeader, id)
			return next.RoundTrip(out.WithContext(ctxutil.WithRequestID(out.Context(), id)))
		})
	}
}
