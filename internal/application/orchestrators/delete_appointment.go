package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"advisory/internal/domain/appointment"
)

// AppointmentStoreForDelete defines the store interface needed by delete.
type AppointmentStoreForDelete interface {
	GetByID(ctx context.Context, id string) (appointment.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// DeleteAppointmentInput carries input for the delete orchestrator.
type DeleteAppointmentInput struct {
	AppointmentID string
	StudentEmail  string // acting student, "" for admin
}

// DeleteAppointmentDeps holds dependencies for delete.
type DeleteAppointmentDeps struct {
	AppointmentStore AppointmentStoreForDelete
}

// ErrNotBookingOwner is returned when a student deletes someone else's
// appointment.
var ErrNotBookingOwner = errors.New("appointment belongs to another student")

// ExecuteDeleteAppointment removes a responded appointment from the
// student's history. Pending appointments stay: deleting one would silently
// discard an open request.
// PRE: Appointment exists and is Aprobada or Rechazada
// POST: Appointment is removed
func ExecuteDeleteAppointment(ctx context.Context, input DeleteAppointmentInput, deps DeleteAppointmentDeps) error {
	appt, err := deps.AppointmentStore.GetByID(ctx, input.AppointmentID)
	if err != nil {
		return err
	}

	if input.StudentEmail != "" && !strings.EqualFold(appt.StudentEmail, input.StudentEmail) {
		return ErrNotBookingOwner
	}

	if !appt.CanDelete() {
		return appointment.ErrDeletePending
	}

	if err := deps.AppointmentStore.Delete(ctx, appt.ID); err != nil {
		return err
	}

	slog.Info("appointment_event", "event", "appointment_deleted", "appointment_id", appt.ID, "status", appt.Status)
	return nil
}
