package http

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/tally/internal/http/response"
)

// RateLimit rejects requests with 429 once limiter runs out of tokens. The
// limit is process-wide; there is no per-client accounting.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.WarnContext(r.Context(), "rate limit exceeded",
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr)
				response.Message(w, http.StatusTooManyRequests, "Too many requests")

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
