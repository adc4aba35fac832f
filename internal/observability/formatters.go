// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/portfolio-ai/internal/assistant"
	"github.com/jonathan/portfolio-ai/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintChunks outputs the retrieval chunks with their sources.
func (p *Printer) PrintChunks(title string, chunks []types.Chunk) {
	if len(chunks) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total chunks: %d\n\n", len(chunks)))

	count := min(len(chunks), maxItemsToShow)
	for i := 0; i < count; i++ {
		chunk := chunks[i]
		sb.WriteString(fmt.Sprintf("• %s [%s]\n", chunk.ID, chunk.Source))
		sb.WriteString(fmt.Sprintf("  %s\n", firstLine(chunk.Text)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(chunks) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more chunks", len(chunks)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoredChunks outputs the top N chunks for a question with their relevance scores.
func (p *Printer) PrintScoredChunks(question string, scored []types.ScoredChunk) {
	if len(scored) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", question))

	count := min(len(scored), maxItemsToShow)
	for i := 0; i < count; i++ {
		sc := scored[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, sc.Chunk.ID))
		sb.WriteString(fmt.Sprintf("    Score: %d  Source: %s\n", sc.Score, sc.Chunk.Source))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(scored) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more chunks", len(scored)-maxItemsToShow))
	}

	p.printBox("CHUNK RELEVANCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResponse outputs an answered question with the chunks it was grounded in and the
// caller's remaining quota.
func (p *Printer) PrintResponse(resp *assistant.Response) {
	if resp == nil {
		return
	}

	p.PrintChunks("RETRIEVED CHUNKS", resp.RetrievedChunks)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Q: %s\n\n", resp.Question))
	for _, line := range wrap(resp.Answer, boxWidth-4) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if resp.SecurityNote != "" {
		sb.WriteString(fmt.Sprintf("\n⚠ %s\n", resp.SecurityNote))
	}
	sb.WriteString(fmt.Sprintf("\nRemaining: %d (global %d)", resp.Remaining, resp.GlobalRemaining))

	p.printBox("ANSWER", sb.String())
}

// truncate shortens s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// wrap breaks text into lines of at most width runes on word boundaries
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if len([]rune(current))+1+len([]rune(word)) > width {
				lines = append(lines, current)
				current = word
				continue
			}
			current += " " + word
		}
		lines = append(lines, current)
	}
	return lines
}
