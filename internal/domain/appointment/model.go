package appointment

import (
	"errors"
	"strings"
	"time"
)

// Status constants for the appointment lifecycle.
const (
	StatusPending  = "Pendiente"
	StatusApproved = "Aprobada"
	StatusRejected = "Rechazada"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusPending, StatusApproved, StatusRejected}

// Domain errors
var (
	ErrEmptyProgrammerID     = errors.New("programmer ID cannot be empty")
	ErrEmptyStudentEmail     = errors.New("student email cannot be empty")
	ErrEmptyDate             = errors.New("date cannot be empty")
	ErrEmptyTime             = errors.New("time cannot be empty")
	ErrInvalidStatus         = errors.New("status must be one of: Pendiente, Aprobada, Rechazada")
	ErrEmptyResponseMessage  = errors.New("a response message is required to approve or reject")
	ErrAlreadyResponded      = errors.New("appointment has already been responded to")
	ErrInvalidResponseStatus = errors.New("response status must be Aprobada or Rechazada")
	ErrDeletePending         = errors.New("a pending appointment cannot be deleted")
)

// Appointment is a booking request tying a student to a programmer, date and
// time, with an approval workflow. It references the programmer by id but is
// otherwise independent of the profile.
type Appointment struct {
	ID              string
	ProgrammerID    string
	ProgrammerName  string
	StudentEmail    string
	StudentName     string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	Topic           string
	Status          string // Pendiente, Aprobada, Rechazada
	ResponseMessage string
	CreatedAt       time.Time
}

// Validate checks if the Appointment has valid data.
// PRE: Appointment struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Appointment) Validate() error {
	if strings.TrimSpace(a.ProgrammerID) == "" {
		return ErrEmptyProgrammerID
	}
	if strings.TrimSpace(a.StudentEmail) == "" {
		return ErrEmptyStudentEmail
	}
	if strings.TrimSpace(a.Date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(a.Time) == "" {
		return ErrEmptyTime
	}
	if !isValidStatus(a.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsPending returns true if the appointment has not been responded to yet.
// INVARIANT: Appointment fields are not mutated
func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

// Respond transitions a pending appointment to Aprobada or Rechazada.
// The transition happens exactly once and always carries a response message.
// PRE: Appointment is Pendiente; message is non-empty
// POST: Status and ResponseMessage are set; no transition back to Pendiente
func (a *Appointment) Respond(status, message string) error {
	if status != StatusApproved && status != StatusRejected {
		return ErrInvalidResponseStatus
	}
	if strings.TrimSpace(message) == "" {
		return ErrEmptyResponseMessage
	}
	if !a.IsPending() {
		return ErrAlreadyResponded
	}
	a.Status = status
	a.ResponseMessage = message
	return nil
}

// CanDelete returns true if the appointment is eligible for history cleanup.
// Pending appointments are never deletable: removing one would silently
// discard an open request.
// INVARIANT: Appointment fields are not mutated
func (a *Appointment) CanDelete() bool {
	return !a.IsPending()
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
