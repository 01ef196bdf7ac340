package projections

import (
	"context"
	"net/url"

	domainAppointment "advisory/internal/domain/appointment"
)

// AppointmentRow is one appointment in a history or inbox list. ContactLink
// is a prefilled mailto URL for reaching the other party about this booking;
// WhatsAppLink is the wa.me share form of the same message (text only, the
// recipient is picked in WhatsApp).
type AppointmentRow struct {
	ID              string
	ProgrammerID    string
	ProgrammerName  string
	StudentEmail    string
	StudentName     string
	Date            string
	Time            string
	Topic           string
	Status          string
	ResponseMessage string
	CanDelete       bool
	ContactLink     string
	WhatsAppLink    string
}

// GetStudentAppointmentsQuery carries query parameters.
type GetStudentAppointmentsQuery struct {
	StudentEmail string
}

// GetStudentAppointmentsResult carries the query result.
type GetStudentAppointmentsResult struct {
	Appointments []AppointmentRow
	PendingCount int
}

// GetAppointmentsDeps holds dependencies for the appointment list queries.
type GetAppointmentsDeps struct {
	AppointmentStore AppointmentStore
	ProgrammerStore  ProgrammerStore
}

// QueryGetStudentAppointments retrieves a student's booking history, newest
// first, with a contact link to each programmer.
// PRE: StudentEmail is non-empty
// POST: Returns rows with CanDelete set only for responded appointments
func QueryGetStudentAppointments(ctx context.Context, query GetStudentAppointmentsQuery, deps GetAppointmentsDeps) (GetStudentAppointmentsResult, error) {
	appts, err := deps.AppointmentStore.ListByStudent(ctx, query.StudentEmail)
	if err != nil {
		return GetStudentAppointmentsResult{}, err
	}

	// Contact emails come from the roster, keyed by programmer ID. A deleted
	// profile just leaves the link empty.
	contacts := make(map[string]string)
	result := GetStudentAppointmentsResult{}
	for _, a := range appts {
		email, ok := contacts[a.ProgrammerID]
		if !ok {
			if p, err := deps.ProgrammerStore.GetByID(ctx, a.ProgrammerID); err == nil {
				email = p.Contact.Email
			}
			contacts[a.ProgrammerID] = email
		}

		row := appointmentRow(a)
		subject := "Asesoría del " + a.Date + " a las " + a.Time
		if email != "" {
			row.ContactLink = mailtoLink(email, subject)
		}
		row.WhatsAppLink = whatsAppLink(subject)
		result.Appointments = append(result.Appointments, row)
		if a.IsPending() {
			result.PendingCount++
		}
	}
	return result, nil
}

// GetProgrammerAppointmentsQuery carries query parameters.
type GetProgrammerAppointmentsQuery struct {
	ProgrammerID string
}

// GetProgrammerAppointmentsResult carries the query result.
type GetProgrammerAppointmentsResult struct {
	Appointments []AppointmentRow
	PendingCount int
}

// QueryGetProgrammerAppointments retrieves the bookings addressed to one
// programmer, newest first, with a contact link to each student.
// PRE: ProgrammerID is non-empty
// POST: Returns rows with pending requests counted
func QueryGetProgrammerAppointments(ctx context.Context, query GetProgrammerAppointmentsQuery, deps GetAppointmentsDeps) (GetProgrammerAppointmentsResult, error) {
	appts, err := deps.AppointmentStore.ListByProgrammer(ctx, query.ProgrammerID)
	if err != nil {
		return GetProgrammerAppointmentsResult{}, err
	}

	result := GetProgrammerAppointmentsResult{}
	for _, a := range appts {
		row := appointmentRow(a)
		subject := "Asesoría del " + a.Date + " a las " + a.Time
		row.ContactLink = mailtoLink(a.StudentEmail, subject)
		row.WhatsAppLink = whatsAppLink(subject)
		result.Appointments = append(result.Appointments, row)
		if a.IsPending() {
			result.PendingCount++
		}
	}
	return result, nil
}

func appointmentRow(a domainAppointment.Appointment) AppointmentRow {
	return AppointmentRow{
		ID:              a.ID,
		ProgrammerID:    a.ProgrammerID,
		ProgrammerName:  a.ProgrammerName,
		StudentEmail:    a.StudentEmail,
		StudentName:     a.StudentName,
		Date:            a.Date,
		Time:            a.Time,
		Topic:           a.Topic,
		Status:          a.Status,
		ResponseMessage: a.ResponseMessage,
		CanDelete:       a.CanDelete(),
	}
}

// mailtoLink builds a mailto URL with a prefilled subject.
func mailtoLink(email, subject string) string {
	return "mailto:" + email + "?subject=" + url.QueryEscape(subject)
}

// whatsAppLink builds a wa.me share URL with prefilled text and no recipient.
func whatsAppLink(text string) string {
	return "https://wa.me/?text=" + url.QueryEscape(text)
}
