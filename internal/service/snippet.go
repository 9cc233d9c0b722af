// Package service implements the snippet lifecycle: creation with
// encryption at rest, retrieval through the access gate, and password
// verification. Persistence is delegated to a SnippetRepository.
package service

import (
	"context"
	"time"

	"github.com/atinyakov/SnipVault/internal/crypto"
	"github.com/atinyakov/SnipVault/internal/expiry"
	"github.com/atinyakov/SnipVault/internal/idgen"
	"github.com/atinyakov/SnipVault/internal/models"
)

// SnippetRepository defines the persistence operations needed by the
// SnippetService.
type SnippetRepository interface {
	// Create persists a new snippet record.
	Create(ctx context.Context, snip *models.Snippet) error
	// GetByID fetches a snippet by id, returning (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Snippet, error)
	// Delete removes a snippet by id.
	Delete(ctx context.Context, id string) error
}

// SnippetService implements snippet business logic on top of a repository
// and the crypto primitives.
type SnippetService struct {
	// repo is the underlying persistence repository.
	repo SnippetRepository
	// cipher encrypts and decrypts snippet bodies.
	cipher *crypto.Cipher
	// now supplies the current time, overridable in tests.
	now func() time.Time
}

// NewSnippetService constructs a SnippetService with the provided
// repository and cipher.
func NewSnippetService(repo SnippetRepository, cipher *crypto.Cipher) *SnippetService {
	return &SnippetService{repo: repo, cipher: cipher, now: time.Now}
}

// Create validates the input, encrypts the content, optionally hashes the
// password, and persists a new snippet. It returns only the generated id;
// ciphertext, IV, hash, and salt never leave the service.
// Either the full record is persisted or nothing is.
func (s *SnippetService) Create(ctx context.Context, content, password string, expiresIn models.ExpiresIn) (string, error) {
	if content == "" {
		return "", ErrContentRequired
	}
	if !expiresIn.Valid() {
		return "", ErrBadExpiry
	}

	ciphertext, iv, err := s.cipher.Encrypt([]byte(content))
	if err != nil {
		return "", err
	}

	var passwordHash, salt []byte
	if password != "" {
		passwordHash, salt, err = crypto.HashPassword(password, nil)
		if err != nil {
			return "", err
		}
	}

	id, err := idgen.New()
	if err != nil {
		return "", err
	}

	snip := &models.Snippet{
		ID:           id,
		Ciphertext:   ciphertext,
		IV:           iv,
		PasswordHash: passwordHash,
		Salt:         salt,
		ExpiresAt:    expiry.Compute(expiresIn, s.now()),
	}
	if err := s.repo.Create(ctx, snip); err != nil {
		return "", err
	}
	return id, nil
}

// Get runs the retrieval access gate for an unauthenticated read.
// Absent and expired snippets both yield ErrNotFound; an expired record
// is deleted on discovery. Protected snippets yield metadata only.
func (s *SnippetService) Get(ctx context.Context, id string) (*models.SnippetView, error) {
	snip, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	if snip.Protected() {
		return &models.SnippetView{IsProtected: true, ExpiresAt: snip.ExpiresAt}, nil
	}
	return s.open(snip)
}

// Unlock verifies the password for a protected snippet and returns its
// content. Absent, expired, and unprotected snippets are all invalid
// requests (ErrNotFound / ErrNotProtected); a present but wrong password
// is ErrWrongPassword, distinct from absence.
func (s *SnippetService) Unlock(ctx context.Context, id, password string) (*models.SnippetView, error) {
	snip, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	if !snip.Protected() {
		return nil, ErrNotProtected
	}
	if !crypto.VerifyPassword(password, snip.PasswordHash, snip.Salt) {
		return nil, ErrWrongPassword
	}
	return s.open(snip)
}

// lookup fetches a live record, enforcing lazy expiry: an expired record
// is deleted and reported as not found.
func (s *SnippetService) lookup(ctx context.Context, id string) (*models.Snippet, error) {
	snip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if snip == nil {
		return nil, ErrNotFound
	}
	if expiry.Expired(snip.ExpiresAt, s.now()) {
		if err := s.repo.Delete(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return snip, nil
}

// open decrypts the record into a full content view.
func (s *SnippetService) open(snip *models.Snippet) (*models.SnippetView, error) {
	plaintext, err := s.cipher.Decrypt(snip.Ciphertext, snip.IV)
	if err != nil {
		return nil, err
	}
	return &models.SnippetView{Content: string(plaintext), ExpiresAt: snip.ExpiresAt}, nil
}
