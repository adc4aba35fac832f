package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-ai/internal/profile"
	"github.com/jonathan/portfolio-ai/internal/types"
)

func TestBuildChunks_Sample(t *testing.T) {
	doc := profile.MustSample()
	chunks := BuildChunks(doc)

	expected := 4 + len(doc.Experience) + len(doc.Projects) + len(doc.Publications)
	require.Len(t, chunks, expected)

	assert.Equal(t, "personal-info", chunks[0].ID)
	assert.Equal(t, "contact", chunks[1].ID)
	assert.Equal(t, "education", chunks[2].ID)
	assert.Equal(t, "skills", chunks[3].ID)
	assert.Equal(t, "job-northwind-ai", chunks[4].ID)
	assert.Equal(t, "Experience: Northwind Analytics", chunks[4].Source)
	assert.Equal(t, "project-graphrag-explorer", chunks[6].ID)
	assert.Equal(t, "Project: GraphRAG Explorer", chunks[6].Source)
	assert.Equal(t, "Publication: Graph-Structured Retrieval for Contract Analysis", chunks[8].Source)

	ids := make(map[string]bool)
	for _, c := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(c.Text), c.ID)
		assert.NotEmpty(t, c.Source, c.ID)
		assert.NotContains(t, c.Text, "undefined", c.ID)
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
	}
}

func TestBuildChunks_Deterministic(t *testing.T) {
	doc := profile.MustSample()
	assert.Equal(t, BuildChunks(doc), BuildChunks(doc))
}

func TestBuildChunks_Text(t *testing.T) {
	doc := &types.ProfileDocument{
		PersonalInfo: types.PersonalInfo{
			Name:    "Sam Lee",
			Title:   "Data Engineer",
			Tagline: "Pipelines that stay up",
			Contact: types.Contact{Email: "sam@example.com", GitHub: "https://github.com/sam"},
		},
		Experience: []types.Experience{{
			Title:    "Engineer",
			Company:  "Acme",
			Duration: "2020 - 2022",
			Summary:  "Built ingestion jobs",
			Achievements: []types.Achievement{
				{Description: "Cut batch latency in half"},
			},
		}},
		Projects: []types.Project{{
			Title:       "Tiny",
			Description: "A small tool",
			Technologies: types.Technologies{
				Programming: []string{"Go"},
			},
		}},
		Education: []types.Education{{
			Degree:      "BSc Physics",
			Institution: "State University",
			FocusAreas:  []string{"Optics", "Statistics"},
		}},
		TechnicalSkills: types.TechnicalSkills{
			ProgrammingLanguages: []types.TechnicalSkill{{Name: "Go"}, {Name: "SQL"}},
			Databases:            []types.TechnicalSkill{{Name: "PostgreSQL"}},
		},
	}

	chunks := BuildChunks(doc)
	require.Len(t, chunks, 6)

	assert.Equal(t, "Sam Lee is a Data Engineer. Pipelines that stay up.", chunks[0].Text)
	assert.Equal(t, "Contact Information: Email: sam@example.com, GitHub: https://github.com/sam.", chunks[1].Text)
	assert.Equal(t, "Education: BSc Physics from State University. Focus areas: Optics, Statistics.", chunks[2].Text)
	assert.Equal(t, "programming languages: Go, SQL. databases: PostgreSQL", chunks[3].Text)
	assert.Equal(t, "job-Acme", chunks[4].ID)
	assert.Equal(t, "Engineer at Acme (2020 - 2022): Built ingestion jobs. Cut batch latency in half.", chunks[4].Text)
	assert.Equal(t, "project-Tiny", chunks[5].ID)
	assert.Equal(t, "Project: Tiny - A small tool. programming: Go.", chunks[5].Text)
}

func TestBuildChunks_EmptySections(t *testing.T) {
	doc := &types.ProfileDocument{PersonalInfo: types.PersonalInfo{Name: "Sam Lee"}}

	chunks := BuildChunks(doc)
	require.Len(t, chunks, 4)
	assert.Equal(t, "Sam Lee.", chunks[0].Text)
	assert.Equal(t, "Contact Information: No contact details listed.", chunks[1].Text)
	assert.Equal(t, "Education: No education listed.", chunks[2].Text)
	assert.Equal(t, "Technical skills: No skills listed.", chunks[3].Text)
}

func TestBuildChunks_DuplicateIDs(t *testing.T) {
	doc := &types.ProfileDocument{
		PersonalInfo: types.PersonalInfo{Name: "Sam Lee"},
		Experience: []types.Experience{
			{Title: "Engineer", Company: "Acme"},
			{Title: "Senior Engineer", Company: "Acme"},
		},
	}

	chunks := BuildChunks(doc)
	require.Len(t, chunks, 6)
	assert.Equal(t, "job-Acme", chunks[4].ID)
	assert.Equal(t, "job-Acme-2", chunks[5].ID)
	assert.Equal(t, "Engineer at Acme.", chunks[4].Text)
}

func TestBuildChunks_Nil(t *testing.T) {
	assert.Nil(t, BuildChunks(nil))
}
