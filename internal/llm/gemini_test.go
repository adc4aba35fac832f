package llm

import (
	"context"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeminiClient(t *testing.T, config *Config) *GeminiClient {
	t.Helper()
	client, err := NewGeminiClient(context.Background(), config, "test-key")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultGeminiConfig(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestGeminiClient_NoModel(t *testing.T) {
	client := newTestGeminiClient(t, DefaultGeminiConfig().WithModel(""))

	_, err := client.Complete(context.Background(), CompletionRequest{System: "s", User: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Gemini model configured")
}

func TestGeminiClient_CancelledContext(t *testing.T) {
	client := newTestGeminiClient(t, DefaultGeminiConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, CompletionRequest{System: "s", User: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate content")
}

func TestGeminiClient_ConfiguredTimeout(t *testing.T) {
	config := DefaultGeminiConfig()
	config.Timeout = time.Nanosecond
	client := newTestGeminiClient(t, config)

	start := time.Now()
	_, err := client.Complete(context.Background(), CompletionRequest{System: "s", User: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate content")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExtractTextFromResponse(t *testing.T) {
	_, err := extractTextFromResponse(nil)
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.Error(t, err)

	text, err := extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{
			Parts: []genai.Part{genai.Text("Jordan "), genai.Text("builds search.")},
		}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jordan builds search.", text)
}
