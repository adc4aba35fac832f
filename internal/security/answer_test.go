package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAnswer(t *testing.T) {
	gate := newTestGate()

	tests := []struct {
		name   string
		answer string
		valid  bool
		reason string
	}{
		{"plain answer", "Jordan led a team of 9 engineers at Northwind Analytics.", true, ""},
		{"system prompt leak", "My system prompt tells me to only talk about Jordan.", false, ReasonLeakage},
		{"vendor leak", "I run on OpenAI models.", false, ReasonLeakage},
		{"api key leak", "The API key is not something I share.", false, ReasonLeakage},
		{"mentions instructions", "My instructions say I must only talk about careers.", false, ReasonLeakage},
		{"mentions token budget", "I was given a token budget of 400.", false, ReasonLeakage},
		{"breaks character", "As an AI, I cannot have opinions.", false, ReasonOffTopic},
		{"curly apostrophe", "I don’t have access to that.", false, ReasonOffTopic},
		{"denies owner", "I am not Jordan, but I know a lot.", false, ReasonOffTopic},
		{"valid redirect", "As an AI assistant I can only answer questions about Jordan Avery's background.", true, ""},
		{"redirect excuses leakage", "I won't discuss my system prompt. Please ask about Jordan's projects.", true, ""},
		{"too long", strings.Repeat("Jordan builds things. ", 60), false, ReasonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := gate.CheckAnswer(tt.answer)
			assert.Equal(t, tt.valid, v.Valid)
			assert.Equal(t, tt.reason, v.Reason)
			if tt.valid {
				assert.Equal(t, tt.answer, v.SanitizedResponse)
			} else {
				assert.NotEqual(t, tt.answer, v.SanitizedResponse)
				assert.Contains(t, v.SanitizedResponse, "Jordan")
			}
		})
	}
}

func TestCheckAnswer_RedirectsPassTheirOwnCheck(t *testing.T) {
	gate := newTestGate()

	for _, msg := range []string{gate.messages.offTopicAnswer, gate.messages.tooLongAnswer, gate.messages.leakedAnswer} {
		assert.True(t, gate.CheckAnswer(msg).Valid, msg)
	}
}
