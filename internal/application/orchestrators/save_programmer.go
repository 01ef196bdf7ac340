package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"advisory/internal/domain/programmer"
)

// ProgrammerStoreForRoster defines the store interface needed by the roster
// orchestrators.
type ProgrammerStoreForRoster interface {
	GetByID(ctx context.Context, id string) (programmer.Programmer, error)
	GetByEmail(ctx context.Context, email string) (programmer.Programmer, error)
	Save(ctx context.Context, p programmer.Programmer) error
	Delete(ctx context.Context, id string) error
}

// SaveProgrammerInput carries input for creating or updating a profile.
// An empty ID creates a new profile.
type SaveProgrammerInput struct {
	ID           string
	Name         string
	Specialty    string
	Description  string
	PhotoURL     string
	Role         string
	Email        string
	LinkedIn     string
	GitHub       string
	PortfolioURL string
}

// SaveProgrammerDeps holds dependencies for SaveProgrammer.
type SaveProgrammerDeps struct {
	ProgrammerStore ProgrammerStoreForRoster
	GenerateID      func() string
}

// ErrProgrammerEmailTaken is returned when another profile already uses the
// email. The email is the join key between accounts and the roster, so two
// profiles must never share one.
var ErrProgrammerEmailTaken = errors.New("another profile already uses this email")

// ExecuteSaveProgrammer creates or updates a roster profile.
// PRE: Input has a name, specialty and email
// POST: Profile persisted; new profiles get a generated ID
func ExecuteSaveProgrammer(ctx context.Context, input SaveProgrammerInput, deps SaveProgrammerDeps) (programmer.Programmer, error) {
	p := programmer.Programmer{
		ID:          input.ID,
		Name:        input.Name,
		Specialty:   input.Specialty,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
		Role:        input.Role,
		Contact: programmer.Contact{
			Email:        strings.TrimSpace(strings.ToLower(input.Email)),
			LinkedIn:     input.LinkedIn,
			GitHub:       input.GitHub,
			PortfolioURL: input.PortfolioURL,
		},
	}
	if p.ID == "" {
		p.ID = deps.GenerateID()
	}
	if err := p.Validate(); err != nil {
		return programmer.Programmer{}, err
	}

	if existing, err := deps.ProgrammerStore.GetByEmail(ctx, p.Contact.Email); err == nil && existing.ID != p.ID {
		return programmer.Programmer{}, ErrProgrammerEmailTaken
	}

	if err := deps.ProgrammerStore.Save(ctx, p); err != nil {
		return programmer.Programmer{}, err
	}

	slog.Info("roster_event", "event", "programmer_saved", "programmer_id", p.ID, "email", p.Contact.Email)
	return p, nil
}

// DeleteProgrammerInput carries input for removing a profile.
type DeleteProgrammerInput struct {
	ProgrammerID string
}

// DeleteProgrammerDeps holds dependencies for DeleteProgrammer.
type DeleteProgrammerDeps struct {
	ProgrammerStore ProgrammerStoreForRoster
}

// ExecuteDeleteProgrammer removes a roster profile. Availability windows and
// portfolio projects cascade with it; past appointments keep their copied
// programmer name.
// PRE: ProgrammerID exists
// POST: Profile and owned rows removed
func ExecuteDeleteProgrammer(ctx context.Context, input DeleteProgrammerInput, deps DeleteProgrammerDeps) error {
	p, err := deps.ProgrammerStore.GetByID(ctx, input.ProgrammerID)
	if err != nil {
		return err
	}
	if err := deps.ProgrammerStore.Delete(ctx, p.ID); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "programmer_deleted", "programmer_id", p.ID, "email", p.Contact.Email)
	return nil
}
