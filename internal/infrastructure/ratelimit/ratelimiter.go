// Package ratelimit counts actions per caller in sliding windows shared by
// every server instance.
package ratelimit

import (
	"context"
	"time"
)

// Config caps the number of actions per window; a zero field disables that window.
type Config struct {
	PerMinute int
	PerHour   int
}

// Limiter records one action for key and reports whether it is within config.
type Limiter interface {
	Allow(ctx context.Context, key string, config Config) (bool, error)
	Remaining(ctx context.Context, key string, window time.Duration, limit int) (int64, error)
	Reset(ctx context.Context, key string) error
}
