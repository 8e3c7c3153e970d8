// Package redis implements login throttling on a Redis fixed window counter.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "parcels:login_attempts"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// LimiterConfig bounds attempts per key inside a window.
type LimiterConfig struct {
	MaxAttempts int64
	Window      time.Duration
}

// LoginLimiter implements ports.LoginAttemptLimiter.
type LoginLimiter struct {
	store cmdable
	cfg   LimiterConfig
}

// NewClient parses a redis:// URL and verifies connectivity.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewLoginLimiter wraps a redis client. Non-positive limits fall back to 5
// attempts per 15 minutes.
func NewLoginLimiter(client *redis.Client, cfg LimiterConfig) *LoginLimiter {
	return newLoginLimiter(client, cfg)
}

func newLoginLimiter(store cmdable, cfg LimiterConfig) *LoginLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	return &LoginLimiter{store: store, cfg: cfg}
}

// Allow counts the attempt. The window starts with the first attempt.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)
	count, err := l.store.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}
	if count == 1 {
		if err = l.store.Expire(ctx, k, l.cfg.Window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	return count <= l.cfg.MaxAttempts, nil
}

// Reset forgets the attempts counted for key. Called after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.store.Del(ctx, l.key(key)).Err()
}

// Ping reports whether Redis is reachable.
func (l *LoginLimiter) Ping(ctx context.Context) error {
	return l.store.Ping(ctx).Err()
}

func (l *LoginLimiter) key(key string) string {
	return keyNamespace + ":" + strings.ToLower(strings.TrimSpace(key))
}

// NopLimiter never throttles. It is used when Redis is not configured.
type NopLimiter struct{}

func (NopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (NopLimiter) Reset(context.Context, string) error         { return nil }
