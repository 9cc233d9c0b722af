// Package expiry maps requested snippet lifetimes to absolute expiry
// instants and decides when a record is no longer alive.
package expiry

import (
	"time"

	"github.com/atinyakov/SnipVault/internal/models"
)

// Compute returns the absolute expiry instant for the given lifetime tag,
// or nil for snippets that never expire. It is pure: the caller supplies now.
func Compute(tag models.ExpiresIn, now time.Time) *time.Time {
	var at time.Time
	switch tag {
	case models.ExpiresInHour:
		at = now.Add(time.Hour)
	case models.ExpiresInDay:
		at = now.AddDate(0, 0, 1)
	case models.ExpiresInWeek:
		at = now.AddDate(0, 0, 7)
	default:
		return nil
	}
	return &at
}

// Expired reports whether a record with the given expiry is logically dead.
// The comparison is strict: a record is still valid at the exact expiry
// instant. A nil expiry never expires.
func Expired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && now.After(*expiresAt)
}
