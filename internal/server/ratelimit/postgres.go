package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createCountersTable = `CREATE TABLE IF NOT EXISTS rate_limit_counters (
	key        TEXT PRIMARY KEY,
	count      BIGINT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps counters in a table so that several processes can share them when
// Redis is not available. A single upsert makes each increment atomic.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pool, verifies it and creates the counters table if needed.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// EnsureSchema creates the counters table
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createCountersTable); err != nil {
		return fmt.Errorf("failed to create rate_limit_counters: %w", err)
	}
	return nil
}

// Increment implements Store.
func (s *PostgresStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	var (
		count     int64
		expiresAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`INSERT INTO rate_limit_counters (key, count, expires_at)
		 VALUES ($1, 1, NOW() + make_interval(secs => $2))
		 ON CONFLICT (key) DO UPDATE SET
		   count = CASE WHEN rate_limit_counters.expires_at <= NOW() THEN 1
		                ELSE rate_limit_counters.count + 1 END,
		   expires_at = CASE WHEN rate_limit_counters.expires_at <= NOW() THEN EXCLUDED.expires_at
		                     ELSE rate_limit_counters.expires_at END
		 RETURNING count, expires_at`,
		key, window.Seconds(),
	).Scan(&count, &expiresAt)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	return count, expiresAt, nil
}

// Count implements Store.
func (s *PostgresStore) Count(ctx context.Context, key string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT count FROM rate_limit_counters WHERE key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return count, nil
}

// DeleteExpired removes counters whose window has ended and returns how many were removed.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM rate_limit_counters WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired counters: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
