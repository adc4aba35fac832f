package llm

import (
	"context"
	"sync"
)

// MockModel is the model name reported by MockClient
const MockModel = "mock"

// MockAnswer is the placeholder reply. It never repeats the question, so visitor text
// cannot trip the answer checks.
const MockAnswer = "[mock] This is a mock response because no language model is configured. " +
	"A configured model would answer from the retrieved portfolio context."

// MockClient answers without calling out. With an empty Response it returns a labelled
// placeholder answer; Err, when set, is returned instead. Requests are recorded.
type MockClient struct {
	Response string
	Err      error

	mu       sync.Mutex
	requests []CompletionRequest
}

// NewMockClient creates a mock client with the default labelled answer
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Complete implements Client.
func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return MockAnswer, nil
}

// Requests returns the requests received so far
func (m *MockClient) Requests() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CompletionRequest(nil), m.requests...)
}

// Model implements Client.
func (m *MockClient) Model() string {
	return MockModel
}

// Close implements Client.
func (m *MockClient) Close() error {
	return nil
}

// IsMock reports whether c answers without a real provider
func IsMock(c Client) bool {
	switch v := c.(type) {
	case *MockClient:
		return true
	case *Throttled:
		return IsMock(v.next)
	default:
		return false
	}
}
