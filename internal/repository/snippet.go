// Package repository provides persistence implementations for the snippet
// service using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/SnipVault/internal/models"
)

// PostgresSnippetRepository implements snippet persistence against a
// PostgreSQL database.
type PostgresSnippetRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSnippetRepository creates a new PostgresSnippetRepository
// using the provided *sql.DB. db must be a valid connection to a
// PostgreSQL instance.
func NewPostgresSnippetRepository(db *sql.DB) *PostgresSnippetRepository {
	return &PostgresSnippetRepository{DB: db}
}

// Create persists a new snippet record. Records are immutable after
// creation; there is no update operation.
//
//	ctx:  context for cancellation and deadlines
//	snip: the record to persist, fully populated by the caller
//
// Returns an error if the insert fails.
func (r *PostgresSnippetRepository) Create(ctx context.Context, snip *models.Snippet) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO snippets (id, ciphertext, iv, password_hash, salt, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, snip.ID, snip.Ciphertext, snip.IV, snip.PasswordHash, snip.Salt, snip.ExpiresAt)
	if err != nil {
		return fmt.Errorf("create snippet: %w", err)
	}
	return nil
}

// GetByID fetches a single snippet by its public identifier.
// A missing record is not an error: it returns (nil, nil) so callers can
// decide how absence maps onto their contract.
func (r *PostgresSnippetRepository) GetByID(ctx context.Context, id string) (*models.Snippet, error) {
	var snip models.Snippet
	var expiresAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, ciphertext, iv, password_hash, salt, expires_at FROM snippets WHERE id = $1
	`, id).Scan(&snip.ID, &snip.Ciphertext, &snip.IV, &snip.PasswordHash, &snip.Salt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snippet: %w", err)
	}
	if expiresAt.Valid {
		snip.ExpiresAt = &expiresAt.Time
	}
	return &snip, nil
}

// Delete removes the snippet with the given identifier. Deleting an
// already-absent record is not an error.
func (r *PostgresSnippetRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM snippets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}
	return nil
}
