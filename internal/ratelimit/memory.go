package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter implements sliding-window rate limiting in process
// memory. All keys share one mutex, which keeps check-and-consume atomic
// for concurrent requests within a single process. It cannot enforce a
// quota across multiple processes; use RedisLimiter for that.
type MemoryLimiter struct {
	mu     sync.Mutex
	slots  map[string][]time.Time
	limit  int
	window time.Duration
	clock  Clock
}

// NewMemoryLimiter creates a limiter allowing limit requests per window
// for each key.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		slots:  make(map[string][]time.Time),
		limit:  limit,
		window: window,
		clock:  SystemClock{},
	}
}

// Allow consumes one request slot for key if the window quota allows it.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	cutoff := now.Add(-m.window)

	kept := m.slots[key][:0]
	for _, ts := range m.slots[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= m.limit {
		m.slots[key] = kept
		reset := now.Add(m.window)
		if len(kept) > 0 {
			reset = kept[0].Add(m.window)
		}
		return &Result{
			Allowed:   false,
			Limit:     m.limit,
			Remaining: 0,
			Reset:     reset,
		}, nil
	}

	kept = append(kept, now)
	m.slots[key] = kept
	return &Result{
		Allowed:   true,
		Limit:     m.limit,
		Remaining: m.limit - len(kept),
		Reset:     now.Add(m.window),
	}, nil
}

// Close releases nothing; it exists to satisfy Limiter.
func (m *MemoryLimiter) Close() error {
	return nil
}
