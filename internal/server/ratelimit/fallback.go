package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// FallbackStore uses a durable primary store and counts in memory whenever the primary
// fails. Errors from the primary are logged and never returned.
type FallbackStore struct {
	primary  Store
	fallback *MemoryStore
	logger   *slog.Logger
}

// NewFallbackStore wraps primary with an in-memory fallback. A nil logger uses slog.Default().
func NewFallbackStore(primary Store, fallback *MemoryStore, logger *slog.Logger) *FallbackStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackStore{primary: primary, fallback: fallback, logger: logger}
}

// Increment implements Store.
func (f *FallbackStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	count, resetAt, err := f.primary.Increment(ctx, key, window)
	if err == nil {
		return count, resetAt, nil
	}

	f.logger.WarnContext(ctx, "counter store unavailable, counting in memory", "key", key, "error", err)
	return f.fallback.Increment(ctx, key, window)
}

// Count implements Store.
func (f *FallbackStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := f.primary.Count(ctx, key)
	if err == nil {
		return count, nil
	}

	f.logger.WarnContext(ctx, "counter store unavailable, reading memory", "key", key, "error", err)
	return f.fallback.Count(ctx, key)
}
