package appointment

import (
	"context"

	domain "advisory/internal/domain/appointment"
)

// Store persists Appointment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Appointment, error)
	Save(ctx context.Context, value domain.Appointment) error
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentEmail string) ([]domain.Appointment, error)
	ListByProgrammer(ctx context.Context, programmerID string) ([]domain.Appointment, error)
}
