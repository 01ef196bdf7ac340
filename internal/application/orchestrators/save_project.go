package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"advisory/internal/domain/project"
)

// ProjectStoreForPortfolio defines the store interface needed by the
// portfolio orchestrators.
type ProjectStoreForPortfolio interface {
	GetByID(ctx context.Context, id string) (project.Project, error)
	Save(ctx context.Context, p project.Project) error
	Delete(ctx context.Context, id string) error
}

// SaveProjectInput carries input for creating or updating a portfolio entry.
// An empty ID creates a new entry.
type SaveProjectInput struct {
	ID            string
	ProgrammerID  string // owner; also the acting programmer for authorization
	Title         string
	Description   string
	Category      string
	Participation string
	Technologies  []string
	RepoURL       string
	DemoURL       string
}

// SaveProjectDeps holds dependencies for SaveProject.
type SaveProjectDeps struct {
	ProjectStore ProjectStoreForPortfolio
	GenerateID   func() string
}

// ErrNotProjectOwner is returned when a programmer edits someone else's
// project.
var ErrNotProjectOwner = errors.New("project belongs to another programmer")

// ExecuteSaveProject creates or updates a portfolio project. Updates never
// change the owner: the stored programmer ID wins over the input.
// PRE: Input has a title, description and valid category
// POST: Project persisted under its owner
func ExecuteSaveProject(ctx context.Context, input SaveProjectInput, deps SaveProjectDeps) (project.Project, error) {
	p := project.Project{
		ID:            input.ID,
		ProgrammerID:  input.ProgrammerID,
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Participation: input.Participation,
		RepoURL:       input.RepoURL,
		DemoURL:       input.DemoURL,
	}
	p.SetTechList(input.Technologies)

	if p.ID == "" {
		p.ID = deps.GenerateID()
	} else {
		existing, err := deps.ProjectStore.GetByID(ctx, p.ID)
		if err != nil {
			return project.Project{}, err
		}
		if existing.ProgrammerID != input.ProgrammerID {
			return project.Project{}, ErrNotProjectOwner
		}
		p.ProgrammerID = existing.ProgrammerID
	}

	if err := p.Validate(); err != nil {
		return project.Project{}, err
	}

	if err := deps.ProjectStore.Save(ctx, p); err != nil {
		return project.Project{}, err
	}

	slog.Info("portfolio_event", "event", "project_saved", "project_id", p.ID, "programmer_id", p.ProgrammerID, "category", p.Category)
	return p, nil
}

// DeleteProjectInput carries input for removing a portfolio entry.
type DeleteProjectInput struct {
	ProjectID    string
	ProgrammerID string // acting programmer, "" for admin
}

// DeleteProjectDeps holds dependencies for DeleteProject.
type DeleteProjectDeps struct {
	ProjectStore ProjectStoreForPortfolio
}

// ExecuteDeleteProject removes a portfolio project, scoped to its owner.
// PRE: ProjectID exists
// POST: Project removed
func ExecuteDeleteProject(ctx context.Context, input DeleteProjectInput, deps DeleteProjectDeps) error {
	p, err := deps.ProjectStore.GetByID(ctx, input.ProjectID)
	if err != nil {
		return err
	}
	if input.ProgrammerID != "" && p.ProgrammerID != input.ProgrammerID {
		return ErrNotProjectOwner
	}
	if err := deps.ProjectStore.Delete(ctx, p.ID); err != nil {
		return err
	}
	slog.Info("portfolio_event", "event", "project_deleted", "project_id", p.ID, "programmer_id", p.ProgrammerID)
	return nil
}
