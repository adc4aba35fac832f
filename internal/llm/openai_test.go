package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultOpenAIConfig()
	config.BaseURL = server.URL + "/v1/"
	client, err := NewOpenAIClient(config, "sk-test")
	require.NoError(t, err)
	return client
}

func TestOpenAIClient_Complete(t *testing.T) {
	var received chatCompletionRequest
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Jordan built GraphRAG pipelines."},"finish_reason":"stop"}]}`))
	})

	answer, err := client.Complete(context.Background(), CompletionRequest{
		System:      "system text",
		User:        "What has Jordan built?",
		MaxTokens:   400,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jordan built GraphRAG pipelines.", answer)

	assert.Equal(t, "gpt-4.1-nano", received.Model)
	assert.Equal(t, 400, received.MaxTokens)
	assert.InDelta(t, 0.7, received.Temperature, 1e-6)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, chatCompletionMsg{Role: "system", Content: "system text"}, received.Messages[0])
	assert.Equal(t, chatCompletionMsg{Role: "user", Content: "What has Jordan built?"}, received.Messages[1])
}

func TestOpenAIClient_ErrorBody(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{User: "hi"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Incorrect API key provided", apiErr.Message)
	assert.Equal(t, ProviderOpenAI, apiErr.Provider)
}

func TestOpenAIClient_ErrorWithoutBody(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Complete(context.Background(), CompletionRequest{User: "hi"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "502 Bad Gateway", apiErr.Message)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{User: "hi"})
	assert.ErrorContains(t, err, "no choices")
}

func TestOpenAIClient_ContextDeadline(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, CompletionRequest{User: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(DefaultOpenAIConfig(), "")
	assert.Error(t, err)
}
