package ratelimit

import (
	"net/http"
	"time"
)

// Store keys. Per-caller and endpoint keys end with the caller identifier.
const (
	CallerKeyPrefix = "ratelimit:"
	GlobalKey       = "global_daily_limit"
)

// Policy is a fixed-window quota.
type Policy struct {
	Limit  int           // Maximum accepted requests per window
	Window time.Duration // Window length, starting at the first request
	Prefix string        // Store key prefix; the full key when the policy is not per caller
}

// Key returns the store key for a caller. An empty id addresses the policy's shared counter.
func (p Policy) Key(id string) string {
	return p.Prefix + id
}

// CallerPolicy limits each caller independently.
func CallerPolicy(limit int, window time.Duration) Policy {
	return Policy{Limit: limit, Window: window, Prefix: CallerKeyPrefix}
}

// GlobalPolicy limits all callers together.
func GlobalPolicy(limit int, window time.Duration) Policy {
	return Policy{Limit: limit, Window: window, Prefix: GlobalKey}
}

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Name   string        // Counter namespace; endpoints sharing a name share a quota
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
}

// Key returns the store key for a caller of this endpoint
func (c EndpointConfig) Key(clientID string) string {
	return CallerKeyPrefix + c.Name + ":" + clientID
}

// ExampleEndpointConfigs returns the configuration for the demonstration endpoint, limited
// per caller across both of its methods.
func ExampleEndpointConfigs(limit int, window time.Duration) []EndpointConfig {
	return []EndpointConfig{
		{Name: "example", Path: "/api/example", Method: http.MethodGet, Limit: limit, Window: window},
		{Name: "example", Path: "/api/example", Method: http.MethodPost, Limit: limit, Window: window},
	}
}
