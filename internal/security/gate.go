// Package security screens visitor questions before any external call and checks model replies
// before they are returned.
package security

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/portfolio-ai/internal/profile"
)

// Kind classifies why a question was rejected
type Kind string

// Rejection kinds, also used as the security event type
const (
	KindImplementation   Kind = "implementation_question"
	KindPromptInjection  Kind = "prompt_injection"
	KindGeneralKnowledge Kind = "general_knowledge"
	KindOtherPeople      Kind = "other_people"
	KindOffTopic         Kind = "off_topic"
	KindIncomplete       Kind = "incomplete_question"
	KindTopicMismatch    Kind = "topic_mismatch"
)

const (
	minQuestionLength = 3
	loggedQuestionLen = 100
)

// Verdict is the result of screening a question
type Verdict struct {
	Allowed bool
	Kind    Kind
	// Reason is the user-facing explanation for a rejection
	Reason string
	// Sanitized is the question to process when allowed
	Sanitized string
}

// Gate screens questions about a single profile owner. It is immutable after construction
// and safe for concurrent use.
type Gate struct {
	owner    profile.Owner
	messages messages
	logger   *slog.Logger
	now      func() time.Time

	implementation []Rule
	injection      []Rule
	forbidden      []Rule
	aboutOthers    []Rule
	topics         []string

	answers answerRules
}

// NewGate builds the rule lists for owner. A nil logger uses slog.Default().
func NewGate(owner profile.Owner, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}

	return &Gate{
		owner:          owner,
		messages:       newMessages(owner),
		logger:         logger,
		now:            time.Now,
		implementation: implementationRules(owner),
		injection:      injectionRules(),
		forbidden:      forbiddenRules(owner),
		aboutOthers:    aboutOthersRules(owner),
		topics:         allowedTopics,
		answers:        newAnswerRules(owner),
	}
}

// Owner returns the identity the gate protects
func (g *Gate) Owner() profile.Owner {
	return g.owner
}

// CheckQuestion screens a question. Rules are evaluated in a fixed order and the first
// match decides: implementation trap, prompt injection, forbidden topics, allow-list,
// length guard and finally default deny.
func (g *Gate) CheckQuestion(ctx context.Context, question string) Verdict {
	normalized := strings.ToLower(strings.TrimSpace(question))

	if rule, ok := firstMatch(g.implementation, normalized); ok {
		g.logEvent(ctx, KindImplementation, rule.Name, question)
		return g.reject(KindImplementation)
	}

	if rule, ok := firstMatch(g.injection, normalized); ok {
		g.logEvent(ctx, KindPromptInjection, rule.Name, question)
		return g.reject(KindPromptInjection)
	}

	if rule, ok := firstMatch(g.forbidden, normalized); ok {
		kind := g.classifyForbidden(normalized)
		g.logEvent(ctx, kind, rule.Name, question)
		return g.reject(kind)
	}

	if greeting.MatchString(normalized) || politeExit.MatchString(normalized) || g.hasAllowedTopic(normalized) {
		return Verdict{Allowed: true, Sanitized: question}
	}

	if utf8.RuneCountInString(normalized) < minQuestionLength {
		return g.reject(KindIncomplete)
	}

	g.logEvent(ctx, KindTopicMismatch, "", question)
	return g.reject(KindTopicMismatch)
}

func (g *Gate) classifyForbidden(normalized string) Kind {
	if generalKnowledge.MatchString(normalized) {
		return KindGeneralKnowledge
	}
	if _, ok := firstMatch(g.aboutOthers, normalized); ok {
		return KindOtherPeople
	}
	return KindOffTopic
}

func (g *Gate) hasAllowedTopic(normalized string) bool {
	if g.owner.Mentions(normalized) {
		return true
	}
	for _, topic := range g.topics {
		if strings.Contains(normalized, topic) {
			return true
		}
	}
	return false
}

func (g *Gate) reject(kind Kind) Verdict {
	return Verdict{Allowed: false, Kind: kind, Reason: g.messages.forKind(kind)}
}

func (g *Gate) logEvent(ctx context.Context, kind Kind, pattern, question string) {
	g.logger.WarnContext(ctx, "security alert",
		"type", string(kind),
		"pattern", pattern,
		"question", truncate(question, loggedQuestionLen),
		"timestamp", g.now().UTC().Format(time.RFC3339),
	)
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
