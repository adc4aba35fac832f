package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Equal(t, "gpt-4.1-nano", config.Model)
	assert.Equal(t, "https://api.openai.com/v1", config.BaseURL)
	assert.Equal(t, 400, config.MaxTokens)
	assert.InDelta(t, 0.7, config.Temperature, 1e-6)
	assert.Equal(t, 30*time.Second, config.Timeout)
}

func TestDefaultGeminiConfig(t *testing.T) {
	config := DefaultGeminiConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.Model)
	assert.Empty(t, config.BaseURL)
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel("custom-model")

	// Original should be unchanged
	assert.Equal(t, "gpt-4.1-nano", config.Model)

	// New config should have custom model and keep everything else
	assert.Equal(t, "custom-model", newConfig.Model)
	assert.Equal(t, config.MaxTokens, newConfig.MaxTokens)
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("gemini"), ProviderGemini)
	assert.Equal(t, Provider("openai"), ProviderOpenAI)
}
