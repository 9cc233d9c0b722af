package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atinyakov/SnipVault/internal/crypto"
	"github.com/atinyakov/SnipVault/internal/models"
	"github.com/atinyakov/SnipVault/internal/service"
)

type mockRepo struct {
	CreateFunc  func(ctx context.Context, snip *models.Snippet) error
	GetByIDFunc func(ctx context.Context, id string) (*models.Snippet, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *mockRepo) Create(ctx context.Context, snip *models.Snippet) error {
	return m.CreateFunc(ctx, snip)
}
func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.Snippet, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func newCipher(t *testing.T) *crypto.Cipher {
	t.Helper()
	c, err := crypto.NewCipher("test-secret")
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	return c
}

// stored builds a persisted record the way Create would, for read tests.
func stored(t *testing.T, c *crypto.Cipher, content, password string, expiresAt *time.Time) *models.Snippet {
	t.Helper()
	ciphertext, iv, err := c.Encrypt([]byte(content))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	snip := &models.Snippet{ID: "abcDEF1234", Ciphertext: ciphertext, IV: iv, ExpiresAt: expiresAt}
	if password != "" {
		hash, salt, err := crypto.HashPassword(password, nil)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		snip.PasswordHash = hash
		snip.Salt = salt
	}
	return snip
}

func TestCreate_Validation(t *testing.T) {
	repoCalled := false
	repo := &mockRepo{
		CreateFunc: func(context.Context, *models.Snippet) error {
			repoCalled = true
			return nil
		},
	}
	svc := service.NewSnippetService(repo, newCipher(t))

	tests := []struct {
		name      string
		content   string
		expiresIn models.ExpiresIn
		wantErr   error
	}{
		{"empty content", "", models.ExpiresInHour, service.ErrContentRequired},
		{"unknown expiry tag", "hello", models.ExpiresIn("2h"), service.ErrBadExpiry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.content, "", tt.expiresIn)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create error = %v; want %v", err, tt.wantErr)
			}
		})
	}
	if repoCalled {
		t.Errorf("repository must not be called for invalid input")
	}
}

func TestCreate_PersistsEncryptedRecord(t *testing.T) {
	var persisted *models.Snippet
	repo := &mockRepo{
		CreateFunc: func(_ context.Context, snip *models.Snippet) error {
			persisted = snip
			return nil
		},
	}
	cipher := newCipher(t)
	svc := service.NewSnippetService(repo, cipher)

	id, err := svc.Create(context.Background(), "my secret text", "hunter2", models.ExpiresInHour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) != 10 {
		t.Errorf("id length = %d; want 10", len(id))
	}
	if persisted == nil || persisted.ID != id {
		t.Fatalf("persisted record missing or id mismatch: %+v", persisted)
	}
	if string(persisted.Ciphertext) == "my secret text" {
		t.Errorf("content was persisted as plaintext")
	}
	if len(persisted.IV) != 16 {
		t.Errorf("iv length = %d; want 16", len(persisted.IV))
	}
	if !persisted.Protected() || len(persisted.Salt) == 0 {
		t.Errorf("expected password hash and salt to be set")
	}
	if persisted.ExpiresAt == nil {
		t.Fatalf("expected expiry to be set")
	}
	plaintext, err := cipher.Decrypt(persisted.Ciphertext, persisted.IV)
	if err != nil || string(plaintext) != "my secret text" {
		t.Errorf("persisted ciphertext does not round-trip: %q, %v", plaintext, err)
	}
}

func TestCreate_NoPasswordNoExpiry(t *testing.T) {
	var persisted *models.Snippet
	repo := &mockRepo{
		CreateFunc: func(_ context.Context, snip *models.Snippet) error {
			persisted = snip
			return nil
		},
	}
	svc := service.NewSnippetService(repo, newCipher(t))

	if _, err := svc.Create(context.Background(), "text", "", models.ExpiresNever); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted.Protected() || persisted.Salt != nil {
		t.Errorf("expected no password hash or salt")
	}
	if persisted.ExpiresAt != nil {
		t.Errorf("expected nil expiry, got %v", persisted.ExpiresAt)
	}
}

func TestCreate_RepoError(t *testing.T) {
	wantErr := errors.New("insert fail")
	repo := &mockRepo{
		CreateFunc: func(context.Context, *models.Snippet) error { return wantErr },
	}
	svc := service.NewSnippetService(repo, newCipher(t))

	if _, err := svc.Create(context.Background(), "text", "", models.ExpiresNever); !errors.Is(err, wantErr) {
		t.Fatalf("Create error = %v; want %v", err, wantErr)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockRepo{
		GetByIDFunc: func(context.Context, string) (*models.Snippet, error) { return nil, nil },
	}
	svc := service.NewSnippetService(repo, newCipher(t))

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("Get error = %v; want ErrNotFound", err)
	}
}

func TestGet_ExpiredDeletedAndNotFound(t *testing.T) {
	cipher := newCipher(t)
	past := time.Now().Add(-time.Minute)
	deleted := ""
	repo := &mockRepo{
		GetByIDFunc: func(_ context.Context, id string) (*models.Snippet, error) {
			return stored(t, cipher, "gone", "", &past), nil
		},
		DeleteFunc: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	svc := service.NewSnippetService(repo, cipher)

	if _, err := svc.Get(context.Background(), "abcDEF1234"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("Get error = %v; want ErrNotFound", err)
	}
	if deleted != "abcDEF1234" {
		t.Errorf("expired record was not deleted, deleted = %q", deleted)
	}
}

func TestGet_ValidAtExactExpiryInstant(t *testing.T) {
	cipher := newCipher(t)
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockRepo{
		GetByIDFunc: func(context.Context, string) (*models.Snippet, error) {
			return stored(t, cipher, "still here", "", &at), nil
		},
	}
	svc := service.NewSnippetService(repo, cipher)
	service.SetNow(svc, func() time.Time { return at })

	view, err := svc.Get(context.Background(), "abcDEF1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Content != "still here" {
		t.Errorf("content = %q; want %q", view.Content, "still here")
	}
}

func TestGet_ProtectedReturnsMetadataOnly(t *testing.T) {
	cipher := newCipher(t)
	expires := time.Now().Add(time.Hour)
	repo := &mockRepo{
		GetByIDFunc: func(context.Context, string) (*models.Snippet, error) {
			return stored(t, cipher, "hidden", "secret", &expires), nil
		},
	}
	svc := service.NewSnippetService(repo, cipher)

	view, err := svc.Get(context.Background(), "abcDEF1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.IsProtected {
		t.Errorf("expected IsProtected")
	}
	if view.Content != "" {
		t.Errorf("content must not be exposed, got %q", view.Content)
	}
	if view.ExpiresAt == nil || !view.ExpiresAt.Equal(expires) {
		t.Errorf("unexpected expiry: %v", view.ExpiresAt)
	}
}

func TestGet_UnprotectedReturnsContent(t *testing.T) {
	cipher := newCipher(t)
	repo := &mockRepo{
		GetByIDFunc: func(context.Context, string) (*models.Snippet, error) {
			return stored(t, cipher, "plain body", "", nil), nil
		},
	}
	svc := service.NewSnippetService(repo, cipher)

	view, err := svc.Get(context.Background(), "abcDEF1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Content != "plain body" || view.IsProtected {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestUnlock(t *testing.T) {
	cipher := newCipher(t)

	tests := []struct {
		name     string
		snip     func() *models.Snippet
		password string
		wantErr  error
	}{
		{
			name:     "not found",
			snip:     func() *models.Snippet { return nil },
			password: "secret",
			wantErr:  service.ErrNotFound,
		},
		{
			name:     "not protected",
			snip:     func() *models.Snippet { return stored(t, cipher, "open", "", nil) },
			password: "secret",
			wantErr:  service.ErrNotProtected,
		},
		{
			name:     "wrong password",
			snip:     func() *models.Snippet { return stored(t, cipher, "hidden", "secret", nil) },
			password: "wrong",
			wantErr:  service.ErrWrongPassword,
		},
		{
			name:     "correct password",
			snip:     func() *models.Snippet { return stored(t, cipher, "hidden", "secret", nil) },
			password: "secret",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{
				GetByIDFunc: func(context.Context, string) (*models.Snippet, error) {
					return tt.snip(), nil
				},
			}
			svc := service.NewSnippetService(repo, cipher)

			view, err := svc.Unlock(context.Background(), "abcDEF1234", tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unlock error = %v; want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if view.Content != "hidden" {
				t.Errorf("content = %q; want %q", view.Content, "hidden")
			}
		})
	}
}

func TestUnlock_ExpiredDeleted(t *testing.T) {
	cipher := newCipher(t)
	past := time.Now().Add(-time.Second)
	deleted := false
	repo := &mockRepo{
		GetByIDFunc: func(context.Context, string) (*models.Snippet, error) {
			return stored(t, cipher, "gone", "secret", &past), nil
		},
		DeleteFunc: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	svc := service.NewSnippetService(repo, cipher)

	if _, err := svc.Unlock(context.Background(), "abcDEF1234", "secret"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("Unlock error = %v; want ErrNotFound", err)
	}
	if !deleted {
		t.Errorf("expired record was not deleted")
	}
}
