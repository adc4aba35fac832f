// Package assistant answers visitor questions about the profile owner. A question is
// validated, screened by the security gate, charged against the global and per-caller
// quotas, grounded in the most relevant profile chunks and answered by the language model,
// whose reply is screened again before it is returned.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/portfolio-ai/internal/retrieval"
	"github.com/jonathan/portfolio-ai/internal/security"
	"github.com/jonathan/portfolio-ai/internal/server/ratelimit"
	"github.com/jonathan/portfolio-ai/internal/types"
)

// Question limits
const (
	MaxQuestionLength = 500
	disallowedChars   = "<>{}$`\\"
)

// FilteredNote is attached to responses whose model reply was replaced by the post-check
const FilteredNote = "Response was filtered for security compliance"

const (
	msgEmptyQuestion = "Please provide a valid question."
	msgUpstream      = "Error generating response. Please try again later."
)

// Response is the successful answer to a question
type Response struct {
	Answer          string        `json:"answer"`
	Embedding       []float64     `json:"embedding"`
	RetrievedChunks []types.Chunk `json:"retrievedChunks"`
	Question        string        `json:"question"`
	Context         string        `json:"context"`
	Remaining       int           `json:"remaining"`
	GlobalRemaining int           `json:"globalRemaining"`
	TotalChunks     int           `json:"totalChunks"`
	SecurityNote    string        `json:"securityNote,omitempty"`
}

// Options wires the service's collaborators
type Options struct {
	Chunks     []types.Chunk
	ChunkCount int // chunks retrieved per question; zero uses retrieval.DefaultChunkCount
	Gate       *security.Gate
	Assembler  *Assembler
	Global     *ratelimit.Limiter
	PerCaller  *ratelimit.Limiter
	Logger     *slog.Logger
}

// Service runs the question pipeline. It is safe for concurrent use; the chunk list is
// read-only after construction and all counters live in the limiters' stores.
type Service struct {
	chunks     []types.Chunk
	chunkCount int
	gate       *security.Gate
	assembler  *Assembler
	global     *ratelimit.Limiter
	perCaller  *ratelimit.Limiter
	logger     *slog.Logger
}

// NewService creates a question pipeline from opts
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	count := opts.ChunkCount
	if count <= 0 {
		count = retrieval.DefaultChunkCount
	}

	return &Service{
		chunks:     opts.Chunks,
		chunkCount: count,
		gate:       opts.Gate,
		assembler:  opts.Assembler,
		global:     opts.Global,
		perCaller:  opts.PerCaller,
		logger:     logger,
	}
}

// TotalChunks returns the size of the retrieval corpus
func (s *Service) TotalChunks() int {
	return len(s.chunks)
}

// Chunks returns a copy of the retrieval corpus
func (s *Service) Chunks() []types.Chunk {
	return append([]types.Chunk(nil), s.chunks...)
}

// Ask answers question on behalf of callerID. Failures are returned as *ValidationError,
// *SecurityRejection, *RateLimitError or *UpstreamError. Quotas are charged once the
// question passes validation and the security gate, and are never refunded.
func (s *Service) Ask(ctx context.Context, callerID, question string) (*Response, error) {
	if err := s.validate(ctx, callerID, question); err != nil {
		return nil, err
	}

	verdict := s.gate.CheckQuestion(ctx, question)
	if !verdict.Allowed {
		return nil, &SecurityRejection{
			Kind:      verdict.Kind,
			Reason:    verdict.Reason,
			Remaining: s.peek(ctx, callerID),
		}
	}

	global := s.allow(ctx, s.global, "")
	if !global.Allowed {
		return nil, &RateLimitError{
			Global:     true,
			Message:    globalLimitMessage(s.global.Policy()),
			Limit:      global.Limit,
			Remaining:  0,
			ResetAt:    global.ResetTime,
			RetryAfter: global.RetryAfter,
		}
	}

	caller := s.allow(ctx, s.perCaller, callerID)
	if !caller.Allowed {
		return nil, &RateLimitError{
			Message:    callerLimitMessage(s.perCaller.Policy()),
			Limit:      caller.Limit,
			Remaining:  0,
			ResetAt:    caller.ResetTime,
			RetryAfter: caller.RetryAfter,
		}
	}

	relevant := retrieval.FindRelevantChunks(verdict.Sanitized, s.chunks, s.chunkCount)

	answer, err := s.assembler.Answer(ctx, verdict.Sanitized, relevant)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return nil, &UpstreamError{Message: msgUpstream, Remaining: caller.Remaining, Err: err}
	}

	resp := &Response{
		Answer:          answer.Text,
		Embedding:       retrieval.SimulateEmbedding(question),
		RetrievedChunks: answer.ChunksUsed,
		Question:        question,
		Context:         answer.Context,
		Remaining:       caller.Remaining,
		GlobalRemaining: global.Remaining,
		TotalChunks:     len(s.chunks),
	}

	if check := s.gate.CheckAnswer(answer.Text); !check.Valid {
		s.logger.WarnContext(ctx, "answer failed validation", "reason", check.Reason)
		resp.Answer = check.SanitizedResponse
		resp.SecurityNote = FilteredNote
	}

	return resp, nil
}

// Remaining returns the caller's unused quota without charging it
func (s *Service) Remaining(ctx context.Context, callerID string) int {
	return s.peek(ctx, callerID)
}

func (s *Service) validate(ctx context.Context, callerID, question string) error {
	owner := s.gate.Owner().FullName

	switch {
	case strings.TrimSpace(question) == "":
		return &ValidationError{Message: msgEmptyQuestion, Remaining: s.peek(ctx, callerID)}
	case utf8.RuneCountInString(question) > MaxQuestionLength:
		return &ValidationError{
			Message:   fmt.Sprintf("Question is too long. Please keep it under %d characters and focused on %s's background.", MaxQuestionLength, owner),
			Remaining: s.peek(ctx, callerID),
		}
	case strings.ContainsAny(question, disallowedChars):
		return &ValidationError{
			Message:   fmt.Sprintf("Please use only standard characters in your question about %s's background.", owner),
			Remaining: s.peek(ctx, callerID),
		}
	}
	return nil
}

// allow charges one request. Store failures fail open: the question proceeds and the
// full quota is reported.
func (s *Service) allow(ctx context.Context, limiter *ratelimit.Limiter, id string) ratelimit.Info {
	info, err := limiter.Allow(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "rate limit unavailable, allowing request", "error", err)
		limit := limiter.Policy().Limit
		return ratelimit.Info{Allowed: true, Limit: limit, Remaining: limit}
	}
	return info
}

func (s *Service) peek(ctx context.Context, callerID string) int {
	remaining, err := s.perCaller.Remaining(ctx, callerID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.WarnContext(ctx, "rate limit lookup failed", "error", err)
		}
		return s.perCaller.Policy().Limit
	}
	return remaining
}

func globalLimitMessage(p ratelimit.Policy) string {
	if p.Window == 24*time.Hour {
		return fmt.Sprintf("We've had many visitors today and have surpassed our daily limit of %d questions. Please try again tomorrow when the limit resets!", p.Limit)
	}
	return fmt.Sprintf("We've had many visitors and have surpassed our limit of %d questions %s. Please try again later!", p.Limit, describeWindow(p.Window))
}

func callerLimitMessage(p ratelimit.Policy) string {
	if p.Window == 24*time.Hour {
		return fmt.Sprintf("Rate limit exceeded. You can ask %d questions per day. Please try again tomorrow.", p.Limit)
	}
	return fmt.Sprintf("Rate limit exceeded. You can ask %d questions %s. Please try again later.", p.Limit, describeWindow(p.Window))
}

func describeWindow(d time.Duration) string {
	switch d {
	case time.Hour:
		return "per hour"
	case time.Minute:
		return "per minute"
	default:
		return "every " + d.String()
	}
}
