package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"advisory/internal/domain/appointment"
	"advisory/internal/domain/availability"
	"advisory/internal/domain/programmer"
)

// ProgrammerStoreForBooking defines the store interface needed by booking.
type ProgrammerStoreForBooking interface {
	GetByID(ctx context.Context, id string) (programmer.Programmer, error)
	ListWindows(ctx context.Context, programmerID string) ([]availability.Window, error)
}

// AppointmentStoreForBooking defines the store interface needed by booking.
type AppointmentStoreForBooking interface {
	Save(ctx context.Context, a appointment.Appointment) error
}

// BookAppointmentInput carries input for the booking orchestrator.
type BookAppointmentInput struct {
	ProgrammerID string
	StudentEmail string
	StudentName  string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	Topic        string
}

// BookAppointmentDeps holds dependencies for booking.
type BookAppointmentDeps struct {
	ProgrammerStore  ProgrammerStoreForBooking
	AppointmentStore AppointmentStoreForBooking
	Notify           NotifyDeps
	GenerateID       func() string
	Now              func() time.Time
}

// Booking errors. ErrSlotRejected wraps the human-readable reason from the
// availability check.
var (
	ErrPastDate      = errors.New("la fecha no puede ser anterior a hoy")
	ErrProgrammerRef = errors.New("programmer does not exist")
)

// SlotRejectedError carries the reason a slot was refused.
type SlotRejectedError struct {
	Reason string
}

func (e *SlotRejectedError) Error() string { return e.Reason }

// ExecuteBookAppointment validates a requested slot against the programmer's
// weekly windows and persists a pending appointment. The server returns the
// persisted entity: callers render exactly what was stored, never a local
// placeholder.
// PRE: Input identifies an existing programmer and a YYYY-MM-DD / HH:MM slot
// POST: A Pendiente appointment is persisted and the programmer is notified,
// or no write happens at all
// INVARIANT: Slot is rejected unless it falls inside a configured window
func ExecuteBookAppointment(ctx context.Context, input BookAppointmentInput, deps BookAppointmentDeps) (appointment.Appointment, error) {
	prog, err := deps.ProgrammerStore.GetByID(ctx, input.ProgrammerID)
	if err != nil {
		return appointment.Appointment{}, ErrProgrammerRef
	}

	if _, err := availability.WeekdayName(input.Date); err != nil {
		return appointment.Appointment{}, err
	}

	// Same-day bookings are allowed; only strictly past dates are rejected.
	today := deps.Now().Format("2006-01-02")
	if input.Date < today {
		return appointment.Appointment{}, ErrPastDate
	}

	windows, err := deps.ProgrammerStore.ListWindows(ctx, input.ProgrammerID)
	if err != nil {
		return appointment.Appointment{}, err
	}

	decision := availability.CheckBookable(input.Date, input.Time, windows)
	if !decision.OK {
		return appointment.Appointment{}, &SlotRejectedError{Reason: decision.Reason}
	}

	appt := appointment.Appointment{
		ID:             deps.GenerateID(),
		ProgrammerID:   prog.ID,
		ProgrammerName: prog.Name,
		StudentEmail:   input.StudentEmail,
		StudentName:    input.StudentName,
		Date:           input.Date,
		Time:           input.Time,
		Topic:          input.Topic,
		Status:         appointment.StatusPending,
		CreatedAt:      deps.Now(),
	}
	if err := appt.Validate(); err != nil {
		return appointment.Appointment{}, err
	}

	if err := deps.AppointmentStore.Save(ctx, appt); err != nil {
		return appointment.Appointment{}, err
	}

	if prog.Contact.Email != "" {
		sendOrQueue(ctx, deps.Notify,
			[]string{prog.Contact.Email},
			"Nueva solicitud de asesoría",
			bookingRequestedBody(appt.StudentName, appt.StudentEmail, appt.Date, appt.Time, appt.Topic),
		)
	}

	slog.Info("appointment_event", "event", "appointment_booked", "appointment_id", appt.ID, "programmer_id", prog.ID, "student", appt.StudentEmail, "date", appt.Date, "time", appt.Time)
	return appt, nil
}
