// Package types provides type definitions for structured data used throughout the portfolio assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ProfileDocument is the static résumé document the site and the assistant are built from.
// It is loaded once at startup and never mutated afterwards.
type ProfileDocument struct {
	PersonalInfo       PersonalInfo        `json:"personalInfo"`
	Experience         []Experience        `json:"experience" validate:"dive"`
	Projects           []Project           `json:"projects" validate:"dive"`
	Education          []Education         `json:"education" validate:"dive"`
	Publications       []Publication       `json:"publications,omitempty" validate:"dive"`
	TechnicalSkills    TechnicalSkills     `json:"technical_skills"`
	AreasOfExpertise   []ExpertiseArea     `json:"areas_of_expertise,omitempty"`
	PersonalityTraits  []string            `json:"personality_traits,omitempty"`
	CareerHighlights   []CareerHighlight   `json:"career_highlights,omitempty"`
	SkillMatchKeywords map[string][]string `json:"ai_skill_matcher_keywords,omitempty"`
}

// PersonalInfo holds the owner's biography and contact details
type PersonalInfo struct {
	Name                    string   `json:"name" validate:"required"`
	Title                   string   `json:"title"`
	Tagline                 string   `json:"tagline"`
	Bio                     string   `json:"bio"`
	Location                string   `json:"location"`
	Contact                 Contact  `json:"contact"`
	Availability            string   `json:"availability"`
	HighlightedAchievements []string `json:"highlighted_achievements,omitempty"`
}

// Contact holds the owner's contact channels
type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
}

// Achievement is a single accomplishment within an experience entry
type Achievement struct {
	Description       string   `json:"description"`
	Impact            string   `json:"impact,omitempty"`
	HighlightKeywords []string `json:"highlight_keywords,omitempty"`
	BusinessValue     string   `json:"business_value,omitempty"`
}

// Technologies groups the technologies used by an experience or project.
// Field order is the rendering order.
type Technologies struct {
	AIFrameworks   []string `json:"ai_frameworks,omitempty"`
	CloudPlatforms []string `json:"cloud_platforms,omitempty"`
	Databases      []string `json:"databases,omitempty"`
	Programming    []string `json:"programming,omitempty"`
	Frontend       []string `json:"frontend,omitempty"`
	Tools          []string `json:"tools,omitempty"`
	Platforms      []string `json:"platforms,omitempty"`
	Visualization  []string `json:"visualization,omitempty"`
}

// TechnologyCategory is one named, non-empty group of technologies
type TechnologyCategory struct {
	Name  string
	Items []string
}

// Categories returns the non-empty technology groups in a fixed order.
func (t Technologies) Categories() []TechnologyCategory {
	all := []TechnologyCategory{
		{Name: "ai_frameworks", Items: t.AIFrameworks},
		{Name: "cloud_platforms", Items: t.CloudPlatforms},
		{Name: "databases", Items: t.Databases},
		{Name: "programming", Items: t.Programming},
		{Name: "frontend", Items: t.Frontend},
		{Name: "tools", Items: t.Tools},
		{Name: "platforms", Items: t.Platforms},
		{Name: "visualization", Items: t.Visualization},
	}
	return nonEmpty(all)
}

// Experience is one job held by the owner
type Experience struct {
	ID             string        `json:"id,omitempty"`
	Title          string        `json:"title" validate:"required"`
	Company        string        `json:"company" validate:"required"`
	Duration       string        `json:"duration"`
	Location       string        `json:"location,omitempty"`
	Type           string        `json:"type,omitempty"`
	Summary        string        `json:"summary,omitempty"`
	SkillsUsed     []string      `json:"skills_used,omitempty"`
	Technologies   Technologies  `json:"technologies,omitempty"`
	Achievements   []Achievement `json:"achievements,omitempty"`
	BusinessImpact string        `json:"business_impact,omitempty"`
	LeadershipRole string        `json:"leadership_role,omitempty"`
}

// Project is a standalone project in the portfolio
type Project struct {
	ID            string       `json:"id,omitempty"`
	Title         string       `json:"title" validate:"required"`
	Duration      string       `json:"duration"`
	Description   string       `json:"description"`
	Type          string       `json:"type,omitempty"`
	SkillsUsed    []string     `json:"skills_used,omitempty"`
	Technologies  Technologies `json:"technologies,omitempty"`
	Achievements  []string     `json:"achievements,omitempty"`
	BusinessValue string       `json:"business_value,omitempty"`
	DemoAvailable bool         `json:"demo_available,omitempty"`
	GitHubLink    string       `json:"github_link,omitempty"`
	ClientImpact  string       `json:"client_impact,omitempty"`
}

// Education is one degree or program
type Education struct {
	Degree      string   `json:"degree" validate:"required"`
	Institution string   `json:"institution" validate:"required"`
	Location    string   `json:"location"`
	Duration    string   `json:"duration"`
	GPA         string   `json:"gpa,omitempty"`
	FocusAreas  []string `json:"focus_areas,omitempty"`
}

// Publication is a paper, article or talk
type Publication struct {
	Title        string   `json:"title" validate:"required"`
	Venue        string   `json:"venue"`
	Type         string   `json:"type,omitempty"`
	Link         string   `json:"link,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Impact       string   `json:"impact,omitempty"`
}

// TechnicalSkill is a single named skill with a proficiency level
type TechnicalSkill struct {
	Name  string `json:"name" validate:"required"`
	Level string `json:"level,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// TechnicalSkills groups skills by category. Field order is the rendering order.
type TechnicalSkills struct {
	ProgrammingLanguages []TechnicalSkill `json:"programming_languages,omitempty" validate:"dive"`
	AIMLFrameworks       []TechnicalSkill `json:"ai_ml_frameworks,omitempty" validate:"dive"`
	CloudPlatforms       []TechnicalSkill `json:"cloud_platforms,omitempty" validate:"dive"`
	Databases            []TechnicalSkill `json:"databases,omitempty" validate:"dive"`
	ToolsPlatforms       []TechnicalSkill `json:"tools_platforms,omitempty" validate:"dive"`
	FrontendFrameworks   []TechnicalSkill `json:"frontend_frameworks,omitempty" validate:"dive"`
	DataVisualization    []TechnicalSkill `json:"data_visualization,omitempty" validate:"dive"`
}

// Categories returns the non-empty skill groups in a fixed order, with skill names flattened.
func (s TechnicalSkills) Categories() []TechnologyCategory {
	all := []TechnologyCategory{
		{Name: "programming_languages", Items: skillNames(s.ProgrammingLanguages)},
		{Name: "ai_ml_frameworks", Items: skillNames(s.AIMLFrameworks)},
		{Name: "cloud_platforms", Items: skillNames(s.CloudPlatforms)},
		{Name: "databases", Items: skillNames(s.Databases)},
		{Name: "tools_platforms", Items: skillNames(s.ToolsPlatforms)},
		{Name: "frontend_frameworks", Items: skillNames(s.FrontendFrameworks)},
		{Name: "data_visualization", Items: skillNames(s.DataVisualization)},
	}
	return nonEmpty(all)
}

// ExpertiseArea groups skills under a named area of expertise
type ExpertiseArea struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// CareerHighlight is a headline achievement with context
type CareerHighlight struct {
	Achievement string `json:"achievement"`
	Context     string `json:"context"`
	Impact      string `json:"impact"`
}

func skillNames(skills []TechnicalSkill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return names
}

func nonEmpty(categories []TechnologyCategory) []TechnologyCategory {
	result := make([]TechnologyCategory, 0, len(categories))
	for _, c := range categories {
		if len(c.Items) > 0 {
			result = append(result, c)
		}
	}
	return result
}
