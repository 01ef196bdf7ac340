package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"advisory/internal/domain/appointment"
)

// AppointmentStoreForRespond defines the store interface needed by respond.
type AppointmentStoreForRespond interface {
	GetByID(ctx context.Context, id string) (appointment.Appointment, error)
	Save(ctx context.Context, a appointment.Appointment) error
}

// RespondAppointmentInput carries input for the respond orchestrator.
type RespondAppointmentInput struct {
	AppointmentID string
	ProgrammerID  string // acting programmer, "" for admin
	Status        string // Aprobada or Rechazada
	Message       string
}

// RespondAppointmentDeps holds dependencies for respond.
type RespondAppointmentDeps struct {
	AppointmentStore AppointmentStoreForRespond
	Notify           NotifyDeps
}

// ErrNotAppointmentOwner is returned when a programmer responds to an
// appointment addressed to someone else.
var ErrNotAppointmentOwner = errors.New("appointment belongs to another programmer")

// ExecuteRespondAppointment transitions a pending appointment to Aprobada or
// Rechazada with a mandatory message, exactly once.
// PRE: Appointment exists and is Pendiente
// POST: Status and message persisted; student notified
// INVARIANT: A responded appointment never changes status again
func ExecuteRespondAppointment(ctx context.Context, input RespondAppointmentInput, deps RespondAppointmentDeps) (appointment.Appointment, error) {
	appt, err := deps.AppointmentStore.GetByID(ctx, input.AppointmentID)
	if err != nil {
		return appointment.Appointment{}, err
	}

	if input.ProgrammerID != "" && appt.ProgrammerID != input.ProgrammerID {
		return appointment.Appointment{}, ErrNotAppointmentOwner
	}

	if err := appt.Respond(input.Status, input.Message); err != nil {
		return appointment.Appointment{}, err
	}

	if err := deps.AppointmentStore.Save(ctx, appt); err != nil {
		return appointment.Appointment{}, err
	}

	if appt.StudentEmail != "" {
		subject := "Tu asesoría fue aprobada"
		if appt.Status == appointment.StatusRejected {
			subject = "Tu asesoría fue rechazada"
		}
		sendOrQueue(ctx, deps.Notify,
			[]string{appt.StudentEmail},
			subject,
			bookingRespondedBody(appt.ProgrammerName, appt.Date, appt.Time, appt.Status, appt.ResponseMessage),
		)
	}

	slog.Info("appointment_event", "event", "appointment_responded", "appointment_id", appt.ID, "status", appt.Status)
	return appt, nil
}
