package middleware

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/SnipVault/internal/ratelimit"
)

// RateLimit rejects requests exceeding the limiter's quota for the
// client's network identity with 429 before any handler work happens.
// A limiter failure is treated as an internal error, never as an open
// gate.
func RateLimit(limiter ratelimit.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), ClientIP(r))
			if err != nil {
				logger.Error("rate limiter unavailable", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !res.Allowed {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the client identity used for rate limiting: the first
// address in X-Forwarded-For when present, else the connection's remote
// address. The header is client-controllable unless a trusted proxy in
// front of the server sanitizes it.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
