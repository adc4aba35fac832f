//go:build integration

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("portfolio_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := ConnectPostgres(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestPostgresStore_Limiter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	store := newPostgresStore(t)
	ctx := context.Background()
	limiter := NewLimiter(store, CallerPolicy(5, 24*time.Hour))

	for i := 0; i < 5; i++ {
		info, err := limiter.Allow(ctx, "caller")
		require.NoError(t, err)
		assert.True(t, info.Allowed)
		assert.Equal(t, 4-i, info.Remaining)
	}

	info, err := limiter.Allow(ctx, "caller")
	require.NoError(t, err)
	assert.False(t, info.Allowed)
	assert.Positive(t, info.RetryAfter)

	remaining, err := limiter.Remaining(ctx, "caller")
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestPostgresStore_WindowResets(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	store := newPostgresStore(t)
	ctx := context.Background()

	count, _, err := store.Increment(ctx, "short", 500*time.Millisecond)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, _, err = store.Increment(ctx, "short", 500*time.Millisecond)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	time.Sleep(time.Second)

	n, err := store.Count(ctx, "short")
	require.NoError(t, err)
	assert.Zero(t, n)

	deleted, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	count, _, err = store.Increment(ctx, "short", 500*time.Millisecond)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
