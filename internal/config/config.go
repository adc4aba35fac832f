// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all settings. Every field can be set through the environment variable named
// in its tag; a .env file in the working directory is read first.
type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"8080"`
	ProfilePath string `envconfig:"PROFILE_PATH"` // empty uses the embedded sample profile
	ChatPath    string `envconfig:"CHAT_PATH" default:"/api/assistant"`

	// Language model
	LLMProvider    string        `envconfig:"LLM_PROVIDER" default:"openai"`
	OpenAIAPIKey   string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel    string        `envconfig:"OPENAI_MODEL" default:"gpt-4.1-nano"`
	GeminiAPIKey   string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel    string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-lite"`
	LLMTimeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
	LLMMaxTokens   int           `envconfig:"LLM_MAX_TOKENS" default:"400"`
	LLMTemperature float32       `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	LLMMaxRPS      float64       `envconfig:"LLM_MAX_RPS" default:"2"` // 0 disables pacing

	// Counter stores, tried in this order: Upstash, Redis, Postgres, memory
	UpstashRedisURL   string `envconfig:"UPSTASH_REDIS_URL"`
	UpstashRedisToken string `envconfig:"UPSTASH_REDIS_TOKEN"`
	RedisURL          string `envconfig:"REDIS_URL"`
	DatabaseURL       string `envconfig:"DATABASE_URL"`

	// Quotas
	RateLimitPerCaller       int           `envconfig:"RATE_LIMIT_PER_CALLER" default:"5"`
	RateLimitGlobal          int           `envconfig:"RATE_LIMIT_GLOBAL" default:"25"`
	RateLimitWindow          time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"24h"`
	RateLimitCleanupInterval time.Duration `envconfig:"RATE_LIMIT_CLEANUP_INTERVAL" default:"5m"`
	ExampleRateLimit         int           `envconfig:"EXAMPLE_RATE_LIMIT" default:"10"`
	ExampleRateWindow        time.Duration `envconfig:"EXAMPLE_RATE_WINDOW" default:"1m"`

	// Contact form
	ContactCSVPath string `envconfig:"CONTACT_CSV_PATH" default:"contact-messages.csv"`

	// Logging
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads .env (if present) and the environment, then validates the result.
func Load() (*Config, error) {
	// Ignore errors, as env vars might be set in the shell
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: PORT must be between 1 and 65535, got %d", ErrInvalidConfig, c.Port)
	}
	if !strings.HasPrefix(c.ChatPath, "/") {
		return fmt.Errorf("%w: CHAT_PATH must start with '/', got %q", ErrInvalidConfig, c.ChatPath)
	}

	switch c.LLMProvider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("%w: LLM_PROVIDER must be 'openai' or 'gemini', got %q", ErrInvalidConfig, c.LLMProvider)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("%w: LLM_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("%w: LLM_MAX_TOKENS must be positive", ErrInvalidConfig)
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return fmt.Errorf("%w: LLM_TEMPERATURE must be between 0 and 2", ErrInvalidConfig)
	}
	if c.LLMMaxRPS < 0 {
		return fmt.Errorf("%w: LLM_MAX_RPS must be non-negative", ErrInvalidConfig)
	}

	limits := []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_PER_CALLER", c.RateLimitPerCaller},
		{"RATE_LIMIT_GLOBAL", c.RateLimitGlobal},
		{"EXAMPLE_RATE_LIMIT", c.ExampleRateLimit},
	}
	for _, l := range limits {
		if l.value <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, l.name)
		}
	}
	if c.RateLimitWindow <= 0 || c.ExampleRateWindow <= 0 {
		return fmt.Errorf("%w: rate limit windows must be positive", ErrInvalidConfig)
	}
	if c.RateLimitCleanupInterval < 0 {
		return fmt.Errorf("%w: RATE_LIMIT_CLEANUP_INTERVAL must be non-negative", ErrInvalidConfig)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%w: LOG_FORMAT must be 'json' or 'text', got %q", ErrInvalidConfig, c.LogFormat)
	}

	return nil
}

// IsPlaceholder reports whether value is unset or still holds a template value such as
// "your-openai-api-key".
func IsPlaceholder(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.Contains(value, "your-")
}

// LLMAPIKey returns the API key for the configured provider
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// HasUpstash reports whether a usable Upstash endpoint and token are configured
func (c *Config) HasUpstash() bool {
	return !IsPlaceholder(c.UpstashRedisURL) && !IsPlaceholder(c.UpstashRedisToken)
}

// HasRedis reports whether a usable Redis URL is configured
func (c *Config) HasRedis() bool {
	return !IsPlaceholder(c.RedisURL)
}

// HasDatabase reports whether a usable Postgres URL is configured
func (c *Config) HasDatabase() bool {
	return !IsPlaceholder(c.DatabaseURL)
}
