package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultBlockWindow = 15 * time.Minute
)

// LoginLimiter throttles repeated failed logins per username, backed by Redis.
// Key format: login_fail:<username>. The counter expires after the block
// window, so a quiet account unlocks itself.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	blockWindow time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive settings fall back to the defaults.
func NewLoginLimiter(client *redis.Client, maxAttempts int, blockWindow time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if blockWindow <= 0 {
		blockWindow = defaultBlockWindow
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, blockWindow: blockWindow}
}

// TooManyAttempts reports whether the username has exhausted its attempts.
func (l *LoginLimiter) TooManyAttempts(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("login limiter check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.blockWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login limiter record: %w", err)
	}
	return nil
}

// Clear drops the failure counter after a successful login.
func (l *LoginLimiter) Clear(ctx context.Context, username string) error {
	if err := l.client.Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("login limiter clear: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(username string) string {
	return "login_fail:" + username
}
