package projections

import (
	"context"

	domainAppointment "advisory/internal/domain/appointment"
	"advisory/internal/domain/availability"
	domainProgrammer "advisory/internal/domain/programmer"
	domainProject "advisory/internal/domain/project"
)

// ProgrammerStore interface for roster queries.
type ProgrammerStore interface {
	GetByID(ctx context.Context, id string) (domainProgrammer.Programmer, error)
	List(ctx context.Context) ([]domainProgrammer.Programmer, error)
	ListWindows(ctx context.Context, programmerID string) ([]availability.Window, error)
}

// ProjectStore interface for portfolio queries.
type ProjectStore interface {
	ListByProgrammer(ctx context.Context, programmerID string) ([]domainProject.Project, error)
}

// AppointmentStore interface for appointment queries.
type AppointmentStore interface {
	ListByStudent(ctx context.Context, studentEmail string) ([]domainAppointment.Appointment, error)
	ListByProgrammer(ctx context.Context, programmerID string) ([]domainAppointment.Appointment, error)
}
