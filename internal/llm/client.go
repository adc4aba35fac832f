package llm

import (
	"context"
	"fmt"
	"strings"
)

// CompletionRequest is a single-turn completion: one system instruction and one user message.
type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete returns the model's reply to the request
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Model returns the model name used for completions
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// APIError is a non-success answer from a provider
type APIError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// IsPlaceholderKey reports whether apiKey is missing or an unfilled template value.
func IsPlaceholderKey(apiKey string) bool {
	apiKey = strings.TrimSpace(apiKey)
	return apiKey == "" || strings.Contains(apiKey, "your-")
}

// NewClient creates a new LLM client based on configuration. A missing or placeholder
// apiKey yields a MockClient so the rest of the pipeline works without network access.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if IsPlaceholderKey(apiKey) {
		return NewMockClient(), nil
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
