package orchestrators

import (
	"context"
	"errors"
	"testing"

	"advisory/internal/domain/appointment"
)

func seedAppointment(store *mockAppointmentStore, status string) appointment.Appointment {
	appt := appointment.Appointment{
		ID:             "appt-001",
		ProgrammerID:   "prog-001",
		ProgrammerName: "Carlos Ruiz",
		StudentEmail:   "ana@example.com",
		StudentName:    "Ana Torres",
		Date:           "2026-03-02",
		Time:           "10:00",
		Status:         status,
		CreatedAt:      fixedTime,
	}
	store.appointments[appt.ID] = appt
	return appt
}

// --- ExecuteRespondAppointment tests ---

func TestExecuteRespondAppointment_Approve(t *testing.T) {
	appts := newMockAppointmentStore()
	sender := &mockSender{}
	seedAppointment(appts, appointment.StatusPending)

	appt, err := ExecuteRespondAppointment(context.Background(), RespondAppointmentInput{
		AppointmentID: "appt-001",
		ProgrammerID:  "prog-001",
		Status:        appointment.StatusApproved,
		Message:       "Nos vemos en la sala 3",
	}, RespondAppointmentDeps{
		AppointmentStore: appts,
		Notify:           testNotifyDeps(sender, newMockOutboxStore()),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != appointment.StatusApproved {
		t.Errorf("expected Aprobada, got %s", appt.Status)
	}
	if appts.appointments["appt-001"].ResponseMessage != "Nos vemos en la sala 3" {
		t.Error("expected response message persisted")
	}
	if len(sender.sent) != 1 || sender.sent[0].To[0] != "ana@example.com" {
		t.Errorf("expected notification to student, got %+v", sender.sent)
	}
}

func TestExecuteRespondAppointment_EmptyMessage(t *testing.T) {
	appts := newMockAppointmentStore()
	seedAppointment(appts, appointment.StatusPending)

	_, err := ExecuteRespondAppointment(context.Background(), RespondAppointmentInput{
		AppointmentID: "appt-001",
		ProgrammerID:  "prog-001",
		Status:        appointment.StatusRejected,
		Message:       "   ",
	}, RespondAppointmentDeps{
		AppointmentStore: appts,
		Notify:           testNotifyDeps(&mockSender{}, newMockOutboxStore()),
	})
	if !errors.Is(err, appointment.ErrEmptyResponseMessage) {
		t.Fatalf("expected ErrEmptyResponseMessage, got %v", err)
	}
	if appts.appointments["appt-001"].Status != appointment.StatusPending {
		t.Error("expected appointment unchanged")
	}
}

func TestExecuteRespondAppointment_AlreadyResponded(t *testing.T) {
	appts := newMockAppointmentStore()
	seedAppointment(appts, appointment.StatusApproved)

	_, err := ExecuteRespondAppointment(context.Background(), RespondAppointmentInput{
		AppointmentID: "appt-001",
		ProgrammerID:  "prog-001",
		Status:        appointment.StatusRejected,
		Message:       "cambio de opinión",
	}, RespondAppointmentDeps{
		AppointmentStore: appts,
		Notify:           testNotifyDeps(&mockSender{}, newMockOutboxStore()),
	})
	if !errors.Is(err, appointment.ErrAlreadyResponded) {
		t.Fatalf("expected ErrAlreadyResponded, got %v", err)
	}
}

func TestExecuteRespondAppointment_WrongProgrammer(t *testing.T) {
	appts := newMockAppointmentStore()
	seedAppointment(appts, appointment.StatusPending)

	_, err := ExecuteRespondAppointment(context.Background(), RespondAppointmentInput{
		AppointmentID: "appt-001",
		ProgrammerID:  "prog-999",
		Status:        appointment.StatusApproved,
		Message:       "ok",
	}, RespondAppointmentDeps{
		AppointmentStore: appts,
		Notify:           testNotifyDeps(&mockSender{}, newMockOutboxStore()),
	})
	if !errors.Is(err, ErrNotAppointmentOwner) {
		t.Fatalf("expected ErrNotAppointmentOwner, got %v", err)
	}
}

func TestExecuteRespondAppointment_InvalidStatus(t *testing.T) {
	appts := newMockAppointmentStore()
	seedAppointment(appts, appointment.StatusPending)

	_, err := ExecuteRespondAppointment(context.Background(), RespondAppointmentInput{
		AppointmentID: "appt-001",
		ProgrammerID:  "prog-001",
		Status:        appointment.StatusPending, // cannot respond back to pending
		Message:       "ok",
	}, RespondAppointmentDeps{
		AppointmentStore: appts,
		Notify:           testNotifyDeps(&mockSender{}, newMockOutboxStore()),
	})
	if !errors.Is(err, appointment.ErrInvalidResponseStatus) {
		t.Fatalf("expected ErrInvalidResponseStatus, got %v", err)
	}
}

// --- ExecuteDeleteAppointment tests ---

func TestExecuteDeleteAppointment_Responded(t *testing.T) {
	appts := newMockAppointmentStore()
	seedAppointment(appts, appointment.StatusRejected)

	err := ExecuteDeleteAppointment(context.Background(), DeleteAppointmentInput{
		AppointmentID: "appt-001",
		StudentEmail:  "Ana@Example.com",
	}, DeleteAppointmentDeps{AppointmentStore: appts})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := appts.appointments["appt-001"]; ok {
		t.Error("expected appointment removed")
	}
}

func TestExecuteDeleteAppointment_PendingBlocked(t *testing.T) {
	appts := newMockAppointmentStore()
	seedAppointment(appts, appointment.StatusPending)

	err := ExecuteDeleteAppointment(context.Background(), DeleteAppointmentInput{
		AppointmentID: "appt-001",
		StudentEmail:  "ana@example.com",
	}, DeleteAppointmentDeps{AppointmentStore: appts})
	if !errors.Is(err, appointment.ErrDeletePending) {
		t.Fatalf("expected ErrDeletePending, got %v", err)
	}
	if _, ok := appts.appointments["appt-001"]; !ok {
		t.Error("expected appointment kept")
	}
}

func TestExecuteDeleteAppointment_WrongStudent(t *testing.T) {
	appts := newMockAppointmentStore()
	seedAppointment(appts, appointment.StatusApproved)

	err := ExecuteDeleteAppointment(context.Background(), DeleteAppointmentInput{
		AppointmentID: "appt-001",
		StudentEmail:  "otro@example.com",
	}, DeleteAppointmentDeps{AppointmentStore: appts})
	if !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("expected ErrNotBookingOwner, got %v", err)
	}
}

func TestExecuteDeleteAppointment_AdminBypassesOwnership(t *testing.T) {
	appts := newMockAppointmentStore()
	seedAppointment(appts, appointment.StatusApproved)

	err := ExecuteDeleteAppointment(context.Background(), DeleteAppointmentInput{
		AppointmentID: "appt-001",
	}, DeleteAppointmentDeps{AppointmentStore: appts})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
