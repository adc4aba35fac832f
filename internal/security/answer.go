package security

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-ai/internal/profile"
)

const maxAnswerLength = 1000

// Post-check reasons
const (
	ReasonLeakage  = "Response contained inappropriate system information"
	ReasonOffTopic = "Response was off-topic"
	ReasonTooLong  = "Response was too long"
)

// AnswerVerdict is the result of checking a model reply
type AnswerVerdict struct {
	Valid bool
	// SanitizedResponse is the text to return to the visitor, either the reply itself
	// or a fixed redirect when the reply was rejected
	SanitizedResponse string
	Reason            string
}

var leakagePhrases = []string{
	"system prompt",
	"critical security rules",
	"never violate",
	"api key",
	"instructions",
	"token",
	"openai",
	"gemini",
}

type answerRules struct {
	breakCharacter []string
	redirects      []string
}

func newAnswerRules(owner profile.Owner) answerRules {
	rules := answerRules{
		breakCharacter: []string{
			"let me tell you about",
			"as an ai",
			"i don't have access",
			"i cannot provide information about other",
		},
	}
	for _, v := range owner.Variants {
		rules.breakCharacter = append(rules.breakCharacter, "i am not "+v, "i cannot discuss "+v)
		rules.redirects = append(rules.redirects,
			"i can only answer questions about "+v,
			"please ask about "+v,
			"focus on "+v,
			v+"'s background",
		)
	}
	return rules
}

// CheckAnswer validates a model reply before it reaches the visitor. Replies that leak
// instruction material or break character are replaced unless they already redirect the
// visitor back to the owner; overly long replies are always replaced.
func (g *Gate) CheckAnswer(answer string) AnswerVerdict {
	normalized := strings.ToLower(strings.ReplaceAll(answer, "’", "'"))
	redirect := containsAny(normalized, g.answers.redirects)

	if !redirect && containsAny(normalized, leakagePhrases) {
		return AnswerVerdict{SanitizedResponse: g.messages.leakedAnswer, Reason: ReasonLeakage}
	}

	if !redirect && containsAny(normalized, g.answers.breakCharacter) {
		return AnswerVerdict{SanitizedResponse: g.messages.offTopicAnswer, Reason: ReasonOffTopic}
	}

	if utf8.RuneCountInString(answer) > maxAnswerLength {
		return AnswerVerdict{SanitizedResponse: g.messages.tooLongAnswer, Reason: ReasonTooLong}
	}

	return AnswerVerdict{Valid: true, SanitizedResponse: answer}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
