// Package retrieval turns the profile document into text chunks and ranks them against questions.
package retrieval

import (
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-ai/internal/types"
)

// Source labels shown to users when a chunk is cited
const (
	SourcePersonalInfo = "Personal Info"
	SourceContact      = "Contact Information"
	SourceEducation    = "Education"
	SourceSkills       = "Technical Skills"
)

// BuildChunks flattens a profile into retrieval chunks in a fixed order:
// biography, contact, education (one chunk), skills (one chunk), one chunk per job,
// one per project, and one per publication.
// The result depends only on the document, so repeated calls return identical chunks.
func BuildChunks(doc *types.ProfileDocument) []types.Chunk {
	if doc == nil {
		return nil
	}

	b := &chunkBuilder{ids: make(map[string]int)}

	b.add("personal-info", personalText(doc.PersonalInfo), SourcePersonalInfo)
	b.add("contact", contactText(doc.PersonalInfo), SourceContact)
	b.add("education", educationText(doc.Education), SourceEducation)
	b.add("skills", skillsText(doc.TechnicalSkills), SourceSkills)

	for _, exp := range doc.Experience {
		b.add("job-"+firstNonEmpty(exp.ID, exp.Company), experienceText(exp), "Experience: "+exp.Company)
	}

	for _, project := range doc.Projects {
		b.add("project-"+firstNonEmpty(project.ID, project.Title), projectText(project), "Project: "+project.Title)
	}

	for _, pub := range doc.Publications {
		b.add("publication-"+pub.Title, publicationText(pub), "Publication: "+pub.Title)
	}

	return b.chunks
}

// chunkBuilder keeps chunk IDs unique by suffixing repeats with their occurrence number
type chunkBuilder struct {
	chunks []types.Chunk
	ids    map[string]int
}

func (b *chunkBuilder) add(id, text, source string) {
	b.ids[id]++
	if n := b.ids[id]; n > 1 {
		id = fmt.Sprintf("%s-%d", id, n)
	}
	b.chunks = append(b.chunks, types.Chunk{ID: id, Text: text, Source: source})
}

func personalText(info types.PersonalInfo) string {
	intro := info.Name
	if info.Title != "" {
		intro = fmt.Sprintf("%s is a %s", info.Name, info.Title)
	}
	return joinNonEmpty(" ", sentence(intro), sentence(info.Tagline), sentence(info.Bio))
}

func contactText(info types.PersonalInfo) string {
	channels := joinNonEmpty(", ",
		labelled("Email", info.Contact.Email),
		labelled("Phone", info.Contact.Phone),
		labelled("LinkedIn", info.Contact.LinkedIn),
		labelled("GitHub", info.Contact.GitHub),
		labelled("Website", info.Contact.Website),
	)

	text := joinNonEmpty(" ",
		sentence(channels),
		sentence(labelled("Location", info.Location)),
		sentence(labelled("Availability", info.Availability)),
	)
	if text == "" {
		text = "No contact details listed."
	}
	return "Contact Information: " + text
}

func educationText(entries []types.Education) string {
	if len(entries) == 0 {
		return "Education: No education listed."
	}

	rendered := make([]string, 0, len(entries))
	for _, edu := range entries {
		head := fmt.Sprintf("%s from %s", edu.Degree, edu.Institution)
		if edu.Location != "" {
			head += fmt.Sprintf(" (%s)", edu.Location)
		}
		if edu.Duration != "" {
			head += " during " + edu.Duration
		}
		rendered = append(rendered, joinNonEmpty(" ",
			sentence(head),
			sentence(labelled("Focus areas", strings.Join(edu.FocusAreas, ", "))),
			labelled("GPA", edu.GPA),
		))
	}
	return "Education: " + strings.Join(rendered, "\n\n")
}

func skillsText(skills types.TechnicalSkills) string {
	categories := skills.Categories()
	if len(categories) == 0 {
		return "Technical skills: No skills listed."
	}

	rendered := make([]string, 0, len(categories))
	for _, c := range categories {
		name := strings.ReplaceAll(c.Name, "_", " ")
		rendered = append(rendered, fmt.Sprintf("%s: %s", name, strings.Join(c.Items, ", ")))
	}
	return strings.Join(rendered, ". ")
}

func experienceText(exp types.Experience) string {
	head := fmt.Sprintf("%s at %s", exp.Title, exp.Company)
	if exp.Duration != "" {
		head += fmt.Sprintf(" (%s)", exp.Duration)
	}

	achievements := make([]string, 0, len(exp.Achievements))
	for _, a := range exp.Achievements {
		achievements = append(achievements, sentence(a.Description))
	}

	body := joinNonEmpty(" ", sentence(exp.Summary), joinNonEmpty(" ", achievements...))
	if body == "" {
		return head + "."
	}
	return head + ": " + body
}

func projectText(project types.Project) string {
	head := "Project: " + project.Title
	if project.Duration != "" {
		head += fmt.Sprintf(" (%s)", project.Duration)
	}
	if project.Description != "" {
		head += " - " + project.Description
	}

	stack := make([]string, 0)
	for _, c := range project.Technologies.Categories() {
		stack = append(stack, fmt.Sprintf("%s: %s", c.Name, strings.Join(c.Items, ", ")))
	}

	return joinNonEmpty(" ", sentence(head), sentence(strings.Join(stack, ". ")), sentence(project.BusinessValue))
}

func publicationText(pub types.Publication) string {
	head := "Publication: " + pub.Title
	if pub.Venue != "" {
		head += fmt.Sprintf(" (%s)", pub.Venue)
	}
	return joinNonEmpty(" ", sentence(head), sentence(pub.Impact))
}

// sentence trims s and terminates it with a period unless it already ends a sentence
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + strings.TrimSpace(value)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
