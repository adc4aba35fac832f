package assistant

import (
	"fmt"
	"time"

	"github.com/jonathan/portfolio-ai/internal/security"
)

// ValidationError indicates a malformed, oversized or disallowed question
type ValidationError struct {
	Message   string
	Remaining int
}

func (e *ValidationError) Error() string {
	return "invalid question: " + e.Message
}

// SecurityRejection indicates the security gate refused the question
type SecurityRejection struct {
	Kind      security.Kind
	Reason    string
	Remaining int
}

func (e *SecurityRejection) Error() string {
	return fmt.Sprintf("question rejected (%s): %s", e.Kind, e.Reason)
}

// RateLimitError indicates the global or per-caller quota is exhausted
type RateLimitError struct {
	Global     bool
	Message    string
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	scope := "caller"
	if e.Global {
		scope = "global"
	}
	return fmt.Sprintf("%s rate limit exceeded: %s", scope, e.Message)
}

// UpstreamError indicates the language model could not produce an answer. The attempt is
// still charged against both quotas.
type UpstreamError struct {
	Message   string
	Remaining int
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// RemainingOf returns the caller quota carried by a service error, if any
func RemainingOf(err error) (int, bool) {
	switch e := err.(type) {
	case *ValidationError:
		return e.Remaining, true
	case *SecurityRejection:
		return e.Remaining, true
	case *RateLimitError:
		return e.Remaining, true
	case *UpstreamError:
		return e.Remaining, true
	default:
		return 0, false
	}
}
