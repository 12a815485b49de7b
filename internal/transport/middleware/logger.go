package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/VW-ai/where2meet-client/pkg/ctxutil"
)

// Logger returns middleware that logs each outgoing request with method,
// path, status code, duration, and context identifiers (request_id,
// event_id). Successful calls log at debug; 5xx and transport failures at error.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			duration := time.Since(start)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("duration", duration),
				slog.String("request_id", r.Header.Get(RequestIDHeader)),
			}
			if eventID := ctxutil.EventIDFromCtx(r.Context()); eventID != "" {
				attrs = append(attrs, slog.String("event_id", eventID))
			}

			level := slog.LevelDebug
			switch {
			case err != nil:
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", err.Error()))
			case resp.StatusCode >= 500:
				level = slog.LevelError
				attrs = append(attrs, slog.Int("status", resp.StatusCode))
			default:
				attrs = append(attrs, slog.Int("status", resp.StatusCode))
			}
			logger.LogAttrs(r.Context(), level, "http.client", attrs...)

			return resp, err
		})
	}
}
