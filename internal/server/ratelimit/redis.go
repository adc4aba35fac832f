package ratelimit

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// upstashPort is the Redis protocol port Upstash exposes next to its REST endpoint
const upstashPort = "6379"

// RedisStore counts with INCR and sets the window as the key's expiry on the first
// increment, so counters are shared by every process using the same Redis.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient creates a client from a redis:// or rediss:// URL.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewUpstashClient creates a TLS client for an Upstash database from its REST URL and token.
func NewUpstashClient(restURL, token string) (*redis.Client, error) {
	u, err := url.Parse(restURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstash url: %w", err)
	}
	if u.Scheme != "https" || u.Hostname() == "" {
		return nil, fmt.Errorf("invalid upstash url %q: expected https://<host>", restURL)
	}

	return redis.NewClient(&redis.Options{
		Addr:      net.JoinHostPort(u.Hostname(), upstashPort),
		Username:  "default",
		Password:  token,
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}), nil
}

// Increment implements Store.
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to set expiry on %s: %w", key, err)
		}
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to read ttl of %s: %w", key, err)
	}

	// A key left without expiry by an earlier failed EXPIRE would never reset
	if ttl < 0 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to set expiry on %s: %w", key, err)
		}
		ttl = window
	}

	return count, time.Now().Add(ttl), nil
}

// Count implements Store.
func (s *RedisStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return count, nil
}

// Ping checks connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
