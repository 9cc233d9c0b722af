package service

import "errors"

// Sentinel errors returned by SnippetService. Handlers map these onto the
// HTTP contract; anything else is an opaque internal failure.
var (
	// ErrContentRequired is returned when a create request has no content.
	ErrContentRequired = errors.New("content is required")
	// ErrBadExpiry is returned for an unknown expiration tag.
	ErrBadExpiry = errors.New("invalid expiration")
	// ErrNotFound is returned when a snippet is absent or expired.
	// Expired records are deliberately indistinguishable from absent ones.
	ErrNotFound = errors.New("snippet not found")
	// ErrNotProtected is returned when password verification is requested
	// for a snippet that has no password.
	ErrNotProtected = errors.New("snippet is not password protected")
	// ErrWrongPassword is returned when the supplied password does not
	// match the stored hash.
	ErrWrongPassword = errors.New("wrong password")
)
