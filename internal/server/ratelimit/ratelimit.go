// Package ratelimit provides fixed-window rate limiting over a pluggable counter store.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter applies one policy over a store. Every call to Allow is charged, whether or not
// the request that follows succeeds.
type Limiter struct {
	store  Store
	policy Policy
	now    func() time.Time
}

// NewLimiter creates a limiter for policy backed by store.
func NewLimiter(store Store, policy Policy) *Limiter {
	return &Limiter{store: store, policy: policy, now: time.Now}
}

// Policy returns the limiter's policy
func (l *Limiter) Policy() Policy {
	return l.policy
}

// Allow charges one request to id and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, id string) (Info, error) {
	count, resetAt, err := l.store.Increment(ctx, l.policy.Key(id), l.policy.Window)
	if err != nil {
		return Info{}, fmt.Errorf("rate limit check failed: %w", err)
	}
	return newInfo(l.policy.Limit, count, resetAt, l.now()), nil
}

// Remaining returns how many requests id has left in the current window without charging.
func (l *Limiter) Remaining(ctx context.Context, id string) (int, error) {
	count, err := l.store.Count(ctx, l.policy.Key(id))
	if err != nil {
		return 0, fmt.Errorf("rate limit lookup failed: %w", err)
	}
	return remaining(l.policy.Limit, count), nil
}

// EndpointLimiter applies per-endpoint policies to callers over a shared store.
type EndpointLimiter struct {
	store   Store
	configs []EndpointConfig
	now     func() time.Time
}

// NewEndpointLimiter creates a limiter for the given endpoint configurations.
func NewEndpointLimiter(store Store, configs []EndpointConfig) *EndpointLimiter {
	return &EndpointLimiter{store: store, configs: configs, now: time.Now}
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Requests to endpoints without a configuration are always allowed and not counted.
func (e *EndpointLimiter) Allow(ctx context.Context, clientID, path, method string) (Info, error) {
	config := MatchEndpoint(path, method, e.configs)
	if config == nil || config.Limit <= 0 {
		return Info{Allowed: true}, nil
	}

	count, resetAt, err := e.store.Increment(ctx, config.Key(clientID), config.Window)
	if err != nil {
		return Info{}, fmt.Errorf("rate limit check failed: %w", err)
	}
	return newInfo(config.Limit, count, resetAt, e.now()), nil
}

func newInfo(limit int, count int64, resetAt, now time.Time) Info {
	info := Info{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: remaining(limit, count),
		ResetTime: resetAt,
	}

	if !info.Allowed {
		info.RetryAfter = max(resetAt.Sub(now), 0)
	}
	return info
}

func remaining(limit int, count int64) int {
	return int(max(int64(limit)-count, 0))
}
