package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/atinyakov/SnipVault/internal/ratelimit"
)

type fakeLimiter struct {
	allowed bool
	err     error
	lastKey string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (*ratelimit.Result, error) {
	f.lastKey = key
	if f.err != nil {
		return nil, f.err
	}
	return &ratelimit.Result{Allowed: f.allowed}, nil
}

func (f *fakeLimiter) Close() error { return nil }

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name         string
		limiter      *fakeLimiter
		expectedCode int
	}{
		{"allowed", &fakeLimiter{allowed: true}, http.StatusOK},
		{"over quota", &fakeLimiter{allowed: false}, http.StatusTooManyRequests},
		{"limiter failure", &fakeLimiter{err: errors.New("redis down")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RateLimit(tt.limiter, zap.NewNop())(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				}))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/snippets/abc", nil)
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d; want %d", rec.Code, tt.expectedCode)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"forwarded single", "203.0.113.7", "10.0.0.1:1234", "203.0.113.7"},
		{"forwarded chain takes first", "203.0.113.7, 10.0.0.2", "10.0.0.1:1234", "203.0.113.7"},
		{"no header falls back to remote addr", "", "10.0.0.1:1234", "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP = %q; want %q", got, tt.want)
			}
		})
	}
}
