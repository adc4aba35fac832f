package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPlaceholderKey(t *testing.T) {
	assert.True(t, IsPlaceholderKey(""))
	assert.True(t, IsPlaceholderKey("   "))
	assert.True(t, IsPlaceholderKey("your-openai-api-key"))
	assert.False(t, IsPlaceholderKey("sk-test-123"))
}

func TestNewClient_PlaceholderKeyUsesMock(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultConfig(), "your-openai-api-key")
	require.NoError(t, err)

	assert.True(t, IsMock(client))
	assert.Equal(t, MockModel, client.Model())
}

func TestNewClient_OpenAI(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultConfig(), "sk-test")
	require.NoError(t, err)

	assert.IsType(t, &OpenAIClient{}, client)
	assert.False(t, IsMock(client))
	assert.Equal(t, "gpt-4.1-nano", client.Model())
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "anthropic"}, "key")
	assert.Error(t, err)
}

func TestMockClient(t *testing.T) {
	mock := NewMockClient()

	answer, err := mock.Complete(context.Background(), CompletionRequest{User: "What does Jordan do?"})
	require.NoError(t, err)
	assert.Contains(t, answer, "[mock]")
	assert.Equal(t, MockAnswer, answer)
	assert.NotContains(t, answer, "What does Jordan do?")

	mock.Response = "fixed"
	answer, err = mock.Complete(context.Background(), CompletionRequest{User: "again"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", answer)

	mock.Err = errors.New("boom")
	_, err = mock.Complete(context.Background(), CompletionRequest{})
	assert.EqualError(t, err, "boom")

	assert.Len(t, mock.Requests(), 3)
}

func TestThrottled(t *testing.T) {
	mock := NewMockClient()

	assert.Same(t, mock, NewThrottled(mock, 0))

	throttled := NewThrottled(mock, 1)
	require.IsType(t, &Throttled{}, throttled)
	assert.True(t, IsMock(throttled))
	assert.Equal(t, MockModel, throttled.Model())

	// The first call uses the burst; the second must wait about a second
	_, err := throttled.Complete(context.Background(), CompletionRequest{User: "one"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = throttled.Complete(ctx, CompletionRequest{User: "two"})
	assert.Error(t, err)
	assert.Len(t, mock.Requests(), 1)
}
