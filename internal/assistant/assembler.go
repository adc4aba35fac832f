package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-ai/internal/llm"
	"github.com/jonathan/portfolio-ai/internal/profile"
	"github.com/jonathan/portfolio-ai/internal/prompts"
	"github.com/jonathan/portfolio-ai/internal/types"
)

const promptFile = "assistant.json"

// contextSeparator joins chunk texts into the prompt's available information
const contextSeparator = "\n\n"

// Answer is the model's reply together with the context it was given
type Answer struct {
	Text       string
	ChunksUsed []types.Chunk
	Context    string
}

// Assembler builds the system instruction from retrieved chunks and asks the model.
type Assembler struct {
	client      llm.Client
	owner       profile.Owner
	template    string
	emptyAnswer string
	maxTokens   int
	temperature float32
}

// NewAssembler creates an assembler answering on behalf of owner
func NewAssembler(client llm.Client, owner profile.Owner, maxTokens int, temperature float32) (*Assembler, error) {
	template, err := prompts.Get(promptFile, "system")
	if err != nil {
		return nil, fmt.Errorf("failed to load system prompt: %w", err)
	}
	emptyAnswer, err := prompts.Get(promptFile, "empty-answer")
	if err != nil {
		return nil, fmt.Errorf("failed to load empty answer: %w", err)
	}

	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}

	return &Assembler{
		client:      client,
		owner:       owner,
		template:    template,
		emptyAnswer: emptyAnswer,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Context joins the chunk texts in order
func Context(chunks []types.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, contextSeparator)
}

// SystemPrompt renders the system instruction around the available information
func (a *Assembler) SystemPrompt(info string) string {
	return prompts.Format(a.template, map[string]string{
		"OwnerName": a.owner.FullName,
		"Context":   info,
	})
}

// Answer sends the system instruction and the raw question to the model.
func (a *Assembler) Answer(ctx context.Context, question string, chunks []types.Chunk) (Answer, error) {
	info := Context(chunks)

	text, err := a.client.Complete(ctx, llm.CompletionRequest{
		System:      a.SystemPrompt(info),
		User:        question,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return Answer{}, fmt.Errorf("completion with %s failed: %w", a.client.Model(), err)
	}

	if strings.TrimSpace(text) == "" {
		text = a.emptyAnswer
	}

	return Answer{Text: text, ChunksUsed: chunks, Context: info}, nil
}
