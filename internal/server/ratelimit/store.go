package ratelimit

import (
	"context"
	"time"
)

// Store is an atomic fixed-window counter store shared by limiters.
type Store interface {
	// Increment adds one to the counter at key and returns the new count and the time the
	// current window resets. The first increment of a window starts it with length window.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)

	// Count returns the counter at key without changing it. Missing or expired counters
	// count as zero.
	Count(ctx context.Context, key string) (int64, error)
}
