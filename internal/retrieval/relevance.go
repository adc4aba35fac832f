package retrieval

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-ai/internal/types"
)

// DefaultChunkCount is the number of chunks the question endpoint asks for
const DefaultChunkCount = 3

const (
	categoryBoost  = 5
	keywordBoost   = 1
	educationBoost = 10
	minKeywordLen  = 4 // characters, not bytes
)

// Category is a semantic bucket a question can fall into
type Category string

// Semantic categories, in classification order
const (
	CategoryEducation Category = "education"
	CategoryWork      Category = "work"
	CategorySkills    Category = "skills"
	CategoryProjects  Category = "projects"
	CategoryContact   Category = "contact"
)

var categoryTerms = []struct {
	category Category
	terms    []string
}{
	{CategoryEducation, []string{"education", "degree", "university", "college", "school", "study", "studied", "graduate", "graduated", "masters", "bachelor", "phd", "major", "gpa", "academic", "student"}},
	{CategoryWork, []string{"work", "job", "career", "employment", "company", "experience", "role", "position", "professional", "industry", "employer"}},
	{CategorySkills, []string{"skill", "technology", "tech", "framework", "language", "programming", "tool", "proficiency", "expertise", "competency", "ability"}},
	{CategoryProjects, []string{"project", "portfolio", "developed", "built", "created", "implemented", "application", "system", "solution", "product"}},
	{CategoryContact, []string{"contact", "email", "phone", "linkedin", "github", "website", "reach", "connect", "message", "availability"}},
}

// sourceAliases lets a category match chunk sources that do not contain its name
var sourceAliases = map[Category]string{
	CategoryWork:    "experience",
	CategoryContact: "contact",
}

// ClassifyQuestion returns the categories whose vocabulary appears in the question.
// Matching is plain substring search over the lower-cased question, so "masters" also
// matches inside longer words. A "where" question about study or a degree always
// includes education, possibly twice.
func ClassifyQuestion(question string) []Category {
	q := strings.ToLower(question)

	var categories []Category
	for _, ct := range categoryTerms {
		if containsAny(q, ct.terms...) {
			categories = append(categories, ct.category)
		}
	}

	if strings.Contains(q, "where") && containsAny(q, "study", "education", "degree", "masters", "bachelor") {
		categories = append(categories, CategoryEducation)
	}

	return categories
}

// ScoreChunks scores every chunk against the question and returns them ordered by
// descending score. Chunks with equal scores keep their original order.
func ScoreChunks(question string, chunks []types.Chunk) []types.ScoredChunk {
	q := strings.ToLower(question)
	categories := ClassifyQuestion(q)
	words := strings.Fields(q)
	educationQuestion := strings.Contains(q, "masters") ||
		(strings.Contains(q, "where") && strings.Contains(q, "study")) ||
		(strings.Contains(q, "where") && strings.Contains(q, "degree"))

	scored := make([]types.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		text := strings.ToLower(chunk.Text)
		source := strings.ToLower(chunk.Source)
		score := 0

		for _, category := range categories {
			if categoryMatchesSource(category, source) {
				score += categoryBoost
			}
		}

		for _, word := range words {
			if utf8.RuneCountInString(word) >= minKeywordLen && strings.Contains(text, word) {
				score += keywordBoost
			}
		}

		if educationQuestion && strings.Contains(source, string(CategoryEducation)) {
			score += educationBoost
		}

		scored = append(scored, types.ScoredChunk{Chunk: chunk, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// FindRelevantChunks returns the count highest-scoring chunks for the question.
// A non-positive count uses DefaultChunkCount.
func FindRelevantChunks(question string, chunks []types.Chunk, count int) []types.Chunk {
	if count <= 0 {
		count = DefaultChunkCount
	}

	scored := ScoreChunks(question, chunks)
	if count > len(scored) {
		count = len(scored)
	}

	result := make([]types.Chunk, 0, count)
	for _, sc := range scored[:count] {
		result = append(result, sc.Chunk)
	}
	return result
}

func categoryMatchesSource(category Category, source string) bool {
	if strings.Contains(source, string(category)) {
		return true
	}
	alias, ok := sourceAliases[category]
	return ok && strings.Contains(source, alias)
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
