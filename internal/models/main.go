// Package models defines the core data structures for stored snippets.
package models

import "time"

// Snippet is the persisted record for one stored text blob.
// Content is kept encrypted at rest; the plaintext never touches storage.
type Snippet struct {
	// ID is the short public identifier of the snippet.
	ID string
	// Ciphertext is the encrypted snippet body.
	Ciphertext []byte
	// IV is the per-record initialization vector used for encryption.
	// It is unique per record; reusing an IV breaks confidentiality.
	IV []byte
	// PasswordHash is set iff the snippet is password-protected.
	PasswordHash []byte
	// Salt accompanies PasswordHash and is never reused across records.
	Salt []byte
	// ExpiresAt is the absolute expiry instant; nil means never expires.
	ExpiresAt *time.Time
}

// Protected reports whether reading the snippet requires a password.
func (s *Snippet) Protected() bool {
	return len(s.PasswordHash) > 0
}

// SnippetView is what a retrieval request may see of a snippet.
// For protected snippets without a verified password, only the
// protection flag and expiry are populated.
type SnippetView struct {
	// Content is the decrypted snippet body, empty when IsProtected.
	Content string `json:"content,omitempty"`
	// IsProtected signals that a password is required to read the content.
	IsProtected bool `json:"isProtected,omitempty"`
	// ExpiresAt is the expiry instant, nil for snippets that never expire.
	ExpiresAt *time.Time `json:"expiresAt"`
}

// ExpiresIn identifies one of the supported snippet lifetimes.
type ExpiresIn string

const (
	// ExpiresInHour keeps the snippet for one hour.
	ExpiresInHour ExpiresIn = "1h"
	// ExpiresInDay keeps the snippet for one day.
	ExpiresInDay ExpiresIn = "1d"
	// ExpiresInWeek keeps the snippet for one week.
	ExpiresInWeek ExpiresIn = "1w"
	// ExpiresNever keeps the snippet until it is deleted explicitly.
	ExpiresNever ExpiresIn = "never"
)

// Valid reports whether e is one of the supported lifetime tags.
func (e ExpiresIn) Valid() bool {
	switch e {
	case ExpiresInHour, ExpiresInDay, ExpiresInWeek, ExpiresNever:
		return true
	}
	return false
}
