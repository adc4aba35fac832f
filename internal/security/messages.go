package security

import (
	"fmt"

	"github.com/jonathan/portfolio-ai/internal/profile"
)

// messages holds the user-facing texts, rendered once for the owner's name
type messages struct {
	byKind map[Kind]string

	offTopicAnswer string
	tooLongAnswer  string
	leakedAnswer   string
}

func newMessages(owner profile.Owner) messages {
	full := owner.FullName
	first := owner.FirstName
	if first == "" {
		first = full
	}

	career := fmt.Sprintf("I can only answer questions about %s's professional background, experience, education, skills, and portfolio.", full)

	byKind := make(map[Kind]string)
	byKind[KindImplementation] = fmt.Sprintf("Well, you have to hire %[1]s for that! 😉 I can tell you about %[1]s's experience and achievements, but for implementation details, you'll need to bring %[1]s on board. Want to know about %[1]s's contact information?", first)
	byKind[KindPromptInjection] = fmt.Sprintf("Ha Ha, you thought you could prompt inject? 😉 I'm an AI Developer - I add safety to my apps! Ask me about %s's experience instead.", first)
	byKind[KindGeneralKnowledge] = fmt.Sprintf("This chatbot only answers questions about %[1]s and %[1]s's technical background, projects, and skills. Try asking \"What is %[1]s's experience with AI?\"", first)
	byKind[KindOtherPeople] = fmt.Sprintf("I can only share information about %s's professional background. Ask me about %s's projects, experience, or skills!", full, first)
	byKind[KindOffTopic] = fmt.Sprintf("I can only answer questions about %s's background, experience, and portfolio. Please ask something related to %s's professional information.", full, first)
	byKind[KindIncomplete] = fmt.Sprintf("Please ask a complete question about %s's background, experience, or portfolio.", first)
	byKind[KindTopicMismatch] = career + fmt.Sprintf(" Please ask something related to %s's career or qualifications.", first)

	return messages{
		byKind:         byKind,
		offTopicAnswer: byKind[KindTopicMismatch],
		tooLongAnswer:  career + fmt.Sprintf(" Please ask something specific about %s's career.", first),
		leakedAnswer:   fmt.Sprintf("I can only answer questions about %s's professional background. Please ask about %s's experience, education, or skills.", full, first),
	}
}

func (m messages) forKind(kind Kind) string {
	if msg, ok := m.byKind[kind]; ok {
		return msg
	}
	return "Invalid question or topic."
}
