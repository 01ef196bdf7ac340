package project

import (
	"errors"
	"strings"
)

// Category constants. Every project belongs to one of the two fixed sections.
const (
	CategoryAcademic = "Academico"
	CategoryWork     = "Laboral"
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{CategoryAcademic, CategoryWork}

// Domain errors
var (
	ErrEmptyProgrammerID = errors.New("programmer ID cannot be empty")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrEmptyDescription  = errors.New("description cannot be empty")
	ErrInvalidCategory   = errors.New("category must be Academico or Laboral")
)

// Project is a portfolio entry owned by one programmer. Technologies are
// stored comma-joined and parsed to a list at the edges.
type Project struct {
	ID            string
	ProgrammerID  string
	Title         string
	Description   string
	Category      string // Academico, Laboral
	Participation string // role in the project, e.g. "Frontend"
	Technologies  string // comma-joined tags
	RepoURL       string
	DemoURL       string
}

// Validate checks if the Project has valid data.
// PRE: Project struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Project) Validate() error {
	if strings.TrimSpace(p.ProgrammerID) == "" {
		return ErrEmptyProgrammerID
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}
	if !isValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// TechList parses the comma-joined technologies into a trimmed list,
// dropping blank entries.
// INVARIANT: Project fields are not mutated
func (p *Project) TechList() []string {
	var tags []string
	for _, t := range strings.Split(p.Technologies, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SetTechList joins a list of technology tags into the stored form.
// PRE: tags may contain blanks and surrounding whitespace
// POST: Technologies holds the comma-joined trimmed tags
func (p *Project) SetTechList(tags []string) {
	var clean []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	p.Technologies = strings.Join(clean, ", ")
}

func isValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
