// Package ratelimit provides sliding-window request rate limiting backed by
// the same Redis instance as the expiration index.
package ratelimit

import (
	"context"
	"time"
)

// Config bounds request rates per caller over a sliding window.
type Config struct {
	Limit  int
	Window time.Duration
}

type RateLimiter interface {
	// Allow reports whether the caller identified by key may proceed.
	Allow(ctx context.Context, key string, cfg Config) (bool, error)
}
