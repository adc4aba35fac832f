package prompts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("assistant.json", "system")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "CRITICAL SECURITY RULES")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("assistant.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("assistant.json", "system")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	result := Format(template, data)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("assistant.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"empty-answer", "system"}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	// First call loads from file
	prompt1, err := Get("assistant.json", "system")
	require.NoError(t, err)

	// Second call should use cache
	prompt2, err := Get("assistant.json", "system")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}

func TestAssistantSystemPrompt(t *testing.T) {
	ClearCache()

	template := MustGet("assistant.json", "system")
	assert.Equal(t, []string{"OwnerName", "Context"}, Placeholders(template))

	prompt := Format(template, map[string]string{
		"OwnerName": "Jordan Avery",
		"Context":   "Education: MS Computer Science.",
	})
	assert.NotContains(t, prompt, "{{.")
	assert.Contains(t, prompt, "questions ONLY about Jordan Avery's professional background")
	assert.Contains(t, prompt, "Available information about Jordan Avery:\nEducation: MS Computer Science.")
	assert.Contains(t, prompt, "under 400 tokens")

	// Seven numbered rules, five of them NEVER rules
	for i := 1; i <= 7; i++ {
		assert.Contains(t, prompt, fmt.Sprintf("\n%d. ", i))
	}
	assert.Equal(t, 5, strings.Count(prompt, "NEVER ")-1)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Placeholders("{{.A}} and {{.B}} and {{.A}}"))
	assert.Empty(t, Placeholders("no placeholders"))
}
