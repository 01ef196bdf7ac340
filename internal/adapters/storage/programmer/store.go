package programmer

import (
	"context"

	"advisory/internal/domain/availability"
	domain "advisory/internal/domain/programmer"
)

// Store persists Programmer profiles and their weekly availability windows.
// Windows live with the profile because every bookability check loads both.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Programmer, error)
	GetByEmail(ctx context.Context, email string) (domain.Programmer, error)
	Save(ctx context.Context, value domain.Programmer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Programmer, error)

	ListWindows(ctx context.Context, programmerID string) ([]availability.Window, error)
	SaveWindow(ctx context.Context, value availability.Window) error
	DeleteWindow(ctx context.Context, id, programmerID string) error
}
