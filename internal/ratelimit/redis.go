package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

//go:embed sliding_window.lua
var slidingWindowScript string

// RedisLimiter implements sliding-window rate limiting backed by Redis.
// The check-and-consume for one key runs as a single Lua script, so the
// quota holds across any number of server processes.
type RedisLimiter struct {
	client    redis.UniversalClient
	script    *redis.Script
	keyPrefix string
	limit     int
	window    time.Duration
	clock     Clock
	closeOnce sync.Once
}

// NewRedisLimiter creates a limiter allowing limit requests per window
// for each key. keyPrefix is prepended to all Redis keys.
func NewRedisLimiter(client redis.UniversalClient, limit int, window time.Duration, keyPrefix string) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		script:    redis.NewScript(slidingWindowScript),
		keyPrefix: keyPrefix,
		limit:     limit,
		window:    window,
		clock:     SystemClock{},
	}
}

// Allow consumes one request slot for key if the window quota allows it.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	now := r.clock.Now()
	args := []interface{}{
		now.UnixMilli(),         // ARGV[1]: current time
		r.window.Milliseconds(), // ARGV[2]: window length
		r.limit,                 // ARGV[3]: quota
		uuid.NewString(),        // ARGV[4]: unique slot member
	}

	result, err := r.script.Run(ctx, r.client, []string{r.keyPrefix + key}, args...).Result()
	if err != nil {
		if strings.Contains(err.Error(), "NOSCRIPT") {
			if _, loadErr := r.script.Load(ctx, r.client).Result(); loadErr != nil {
				return nil, fmt.Errorf("load rate limit script: %w", loadErr)
			}
			result, err = r.script.Run(ctx, r.client, []string{r.keyPrefix + key}, args...).Result()
		}
		if err != nil {
			return nil, fmt.Errorf("rate limit script: %w", err)
		}
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply %v", result)
	}

	return &Result{
		Allowed:   values[0].(int64) == 1,
		Limit:     r.limit,
		Remaining: int(values[1].(int64)),
		Reset:     time.UnixMilli(values[2].(int64)),
	}, nil
}

// Close closes the Redis connection. Safe to call multiple times.
func (r *RedisLimiter) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.client.Close()
	})
	return err
}
