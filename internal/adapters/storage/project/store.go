package project

import (
	"context"

	domain "advisory/internal/domain/project"
)

// Store persists Project state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Project, error)
	Save(ctx context.Context, value domain.Project) error
	Delete(ctx context.Context, id string) error
	ListByProgrammer(ctx context.Context, programmerID string) ([]domain.Project, error)
}
