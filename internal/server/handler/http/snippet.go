// Package http provides HTTP handlers for the snippet API: creation,
// retrieval, and password verification.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/SnipVault/internal/models"
	"github.com/atinyakov/SnipVault/internal/service"
)

// SnippetService defines the interface for snippet operations required
// by the HTTP handlers.
type SnippetService interface {
	// Create stores a new encrypted snippet and returns its id.
	Create(ctx context.Context, content, password string, expiresIn models.ExpiresIn) (string, error)
	// Get retrieves a snippet without credentials; protected snippets
	// yield metadata only.
	Get(ctx context.Context, id string) (*models.SnippetView, error)
	// Unlock retrieves a protected snippet after verifying its password.
	Unlock(ctx context.Context, id, password string) (*models.SnippetView, error)
}

// SnippetHandler handles HTTP requests for the snippet lifecycle.
type SnippetHandler struct {
	// SnippetService performs the underlying snippet operations.
	SnippetService SnippetService
}

// CreateRequest represents the JSON payload for snippet creation.
type CreateRequest struct {
	// Content is the snippet body to store, required.
	Content string `json:"content"`
	// Password optionally gates access to the snippet.
	Password string `json:"password,omitempty"`
	// ExpiresIn is one of "1h", "1d", "1w", "never".
	ExpiresIn models.ExpiresIn `json:"expiresIn"`
}

// VerifyRequest represents the JSON payload for password verification.
type VerifyRequest struct {
	// Password is the credential to check against the stored hash.
	Password string `json:"password"`
}

// Create handles snippet creation requests.
// It expects a JSON body with non-empty content and a known expiration
// tag. On success it responds with the snippet id and nothing else.
func (h *SnippetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := h.SnippetService.Create(r.Context(), req.Content, req.Password, req.ExpiresIn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentRequired), errors.Is(err, service.ErrBadExpiry):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// Get handles unauthenticated snippet reads.
// Absent and expired snippets are indistinguishable: both are 404.
// Protected snippets respond with {"isProtected":true,"expiresAt":...}
// and never expose content.
func (h *SnippetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.SnippetService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "snippet not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}

// Verify handles password verification for protected snippets.
// A missing or empty password field is an invalid request, distinct from
// a wrong password. Absent, expired, and unprotected snippets are all
// invalid requests as well; only a present-but-wrong password is 401.
func (h *SnippetHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	view, err := h.SnippetService.Unlock(r.Context(), id, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNotProtected):
			http.Error(w, "invalid request", http.StatusBadRequest)
		case errors.Is(err, service.ErrWrongPassword):
			http.Error(w, "invalid password", http.StatusUnauthorized)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}
