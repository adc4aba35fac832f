package ratelimit

import (
	"context"
	"sync"
	"time"
)

type counter struct {
	count       int64
	windowStart time.Time
	window      time.Duration
}

// expired reports whether the window has fully elapsed at now
func (c *counter) expired(now time.Time) bool {
	return now.Sub(c.windowStart) > c.window
}

// MemoryStore keeps counters in process memory. It is the fallback when no durable store is
// configured or reachable, and is safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
	now      func() time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// MemoryOption configures a MemoryStore
type MemoryOption func(*MemoryStore)

// WithClock replaces the store's time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		m.now = now
	}
}

// NewMemoryStore creates an in-process store. A positive cleanupInterval starts a goroutine
// that evicts stale counters; call Stop to end it.
func NewMemoryStore(cleanupInterval time.Duration, opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		counters: make(map[string]*counter),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if cleanupInterval > 0 {
		m.cleanupTicker = time.NewTicker(cleanupInterval)
		m.cleanupStop = make(chan struct{})
		go m.cleanup()
	}

	return m
}

// Increment implements Store. A counter whose window has elapsed restarts at one.
func (m *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	c, ok := m.counters[key]
	if !ok || c.expired(now) {
		c = &counter{windowStart: now, window: window}
		m.counters[key] = c
	}
	c.count++

	return c.count, c.windowStart.Add(c.window), nil
}

// Count implements Store.
func (m *MemoryStore) Count(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[key]
	if !ok || c.expired(m.now()) {
		return 0, nil
	}
	return c.count, nil
}

// Len returns the number of tracked counters
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.counters)
}

func (m *MemoryStore) cleanup() {
	for {
		select {
		case <-m.cleanupTicker.C:
			m.evictStale()
		case <-m.cleanupStop:
			return
		}
	}
}

// evictStale removes counters whose window ended more than one window ago.
func (m *MemoryStore) evictStale() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, c := range m.counters {
		if now.Sub(c.windowStart) > 2*c.window {
			delete(m.counters, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (m *MemoryStore) Stop() {
	m.stopOnce.Do(func() {
		if m.cleanupTicker != nil {
			m.cleanupTicker.Stop()
		}
		if m.cleanupStop != nil {
			close(m.cleanupStop)
		}
	})
}
