// Package http provides HTTP routing and middleware configuration
// for the snippet service.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/atinyakov/SnipVault/internal/middleware"
	"github.com/atinyakov/SnipVault/internal/ratelimit"
)

// NewRouter constructs and returns an HTTP handler that serves the
// snippet API. It applies JSON content-type enforcement and request
// logging, and rate-limits the create and read endpoints by client
// network identity.
//
// Routes:
//
//	POST /snippets       → handler.Create (rate limited)
//	GET  /snippets/{id}  → handler.Get    (rate limited)
//	POST /snippets/{id}  → handler.Verify
func NewRouter(
	handler *SnippetHandler,
	limiter ratelimit.Limiter,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/snippets", func(r chi.Router) {
		// Abusable entry points consult the limiter before any work
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter, logger))
			r.Post("/", handler.Create)
			r.Get("/{id}", handler.Get)
		})

		r.Post("/{id}", handler.Verify)
	})

	return r
}
