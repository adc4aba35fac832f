package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Throttled paces outbound completions so bursts of visitors cannot exceed the provider's
// request rate. Callers wait for a slot until their context is done.
type Throttled struct {
	next    Client
	limiter *rate.Limiter
}

// NewThrottled wraps next with a limiter allowing rps requests per second. A non-positive
// rps disables pacing and returns next unchanged.
func NewThrottled(next Client, rps float64) Client {
	if rps <= 0 {
		return next
	}
	burst := max(int(rps), 1)
	return &Throttled{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Complete implements Client.
func (t *Throttled) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for LLM rate limit: %w", err)
	}
	return t.next.Complete(ctx, req)
}

// Model implements Client.
func (t *Throttled) Model() string {
	return t.next.Model()
}

// Close implements Client.
func (t *Throttled) Close() error {
	return t.next.Close()
}
