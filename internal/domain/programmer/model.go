package programmer

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength        = 120
	MaxDescriptionLength = 4000
)

// Specialty constants used by the roster filters. Free-text specialties are
// tolerated on stored profiles; these are the canonical filter values.
const (
	SpecialtyFrontend  = "Frontend Developer"
	SpecialtyBackend   = "Backend Developer"
	SpecialtyFullStack = "Full-Stack Developer"
	SpecialtyDevOps    = "DevOps Engineer"
)

// Specialties contains the canonical specialty values.
var Specialties = []string{SpecialtyFrontend, SpecialtyBackend, SpecialtyFullStack, SpecialtyDevOps}

// Role strings recognised on stored profiles. The Spanish spelling appears in
// older records and normalises to the same role.
const (
	RoleProgrammer  = "programmer"
	RoleProgramador = "programador"
)

// Domain errors
var (
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrEmptyEmail   = errors.New("contact email cannot be empty")
	ErrInvalidEmail = errors.New("contact email must contain '@'")
)

// Contact holds the reachable addresses for a programmer.
type Contact struct {
	Email        string
	LinkedIn     string
	GitHub       string
	PortfolioURL string
}

// Programmer holds state for a roster profile. A profile owns its
// availability windows and portfolio projects.
type Programmer struct {
	ID          string
	Name        string
	Specialty   string
	Description string // markdown
	PhotoURL    string
	Role        string // optional stored role tag
	Contact     Contact
}

// Validate checks if the Programmer has valid data.
// PRE: Programmer struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Programmer) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("name cannot exceed 120 characters")
	}
	if len(p.Description) > MaxDescriptionLength {
		return errors.New("description cannot exceed 4000 characters")
	}
	if strings.TrimSpace(p.Contact.Email) == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(p.Contact.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// HasProgrammerRole reports whether the stored role tag normalises to the
// programmer role. English and Spanish spellings are both recognised.
// INVARIANT: Programmer fields are not mutated
func (p *Programmer) HasProgrammerRole() bool {
	role := strings.ToLower(strings.TrimSpace(p.Role))
	return role == RoleProgrammer || role == RoleProgramador
}

// MatchesFilter reports whether the profile matches a search term (against
// name or specialty, case-insensitive) and a specialty filter. An empty term
// and the "All" specialty match everything.
// INVARIANT: Programmer fields are not mutated
func (p *Programmer) MatchesFilter(term, specialty string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	name := strings.ToLower(p.Name)
	spec := strings.ToLower(p.Specialty)
	if term != "" && !strings.Contains(name, term) && !strings.Contains(spec, term) {
		return false
	}
	return specialty == "" || specialty == "All" || p.Specialty == specialty
}
