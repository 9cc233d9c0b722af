// Package ratelimit enforces a sliding-window request quota per client
// key. The Redis-backed limiter is safe across processes; the in-memory
// limiter serializes on a single mutex and suits single-process runs
// and tests.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	// Allow atomically consumes one request slot for key if the quota
	// allows it. A request that is denied consumes nothing.
	Allow(ctx context.Context, key string) (*Result, error)

	// Close releases limiter resources.
	Close() error
}

// Result describes the outcome of one quota check.
type Result struct {
	// Allowed is true when the request may proceed.
	Allowed bool
	// Limit is the configured quota for the window.
	Limit int
	// Remaining is the number of slots left in the current window.
	Remaining int
	// Reset is when the oldest consumed slot leaves the window.
	Reset time.Time
}

// Clock abstracts time for testing.
type Clock interface {
	Now() time.Time
}

// SystemClock uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock returns a settable time, for tests.
type FixedClock struct {
	Time time.Time
}

// Now returns the fixed time.
func (c *FixedClock) Now() time.Time {
	return c.Time
}
