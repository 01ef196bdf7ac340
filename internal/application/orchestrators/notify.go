package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"time"

	emailAdapter "advisory/internal/adapters/email"
	domainOutbox "advisory/internal/domain/outbox"
)

// OutboxStoreForNotify defines the store interface needed to queue
// notification retries.
type OutboxStoreForNotify interface {
	Save(ctx context.Context, e domainOutbox.Entry) error
}

// NotifyDeps holds the shared notification dependencies. Notifications are
// fire-and-forget: a provider failure never fails the triggering operation,
// it lands the payload in the outbox for the retry worker.
type NotifyDeps struct {
	EmailSender emailAdapter.Sender
	OutboxStore OutboxStoreForNotify
	FromAddress string
	ReplyTo     string
	GenerateID  func() string
	Now         func() time.Time
}

// emailPayload is the outbox payload for a queued notification email.
type emailPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// sendOrQueue attempts an immediate send and falls back to the outbox.
// PRE: to is non-empty
// POST: Email is delivered, or an outbox entry exists for the retry worker
func sendOrQueue(ctx context.Context, deps NotifyDeps, to []string, subject, htmlBody string) {
	req := emailAdapter.SendRequest{
		To:      to,
		From:    deps.FromAddress,
		Subject: subject,
		HTML:    htmlBody,
		ReplyTo: deps.ReplyTo,
	}

	if _, err := deps.EmailSender.Send(ctx, req); err == nil {
		return
	}

	payload, err := json.Marshal(emailPayload{To: to, Subject: subject, HTML: htmlBody, ReplyTo: deps.ReplyTo})
	if err != nil {
		slog.Error("notify_payload_marshal_failed", "subject", subject, "error", err)
		return
	}

	entry := domainOutbox.Entry{
		ID:          deps.GenerateID(),
		ActionType:  domainOutbox.ActionTypeEmail,
		Payload:     string(payload),
		Status:      domainOutbox.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   deps.Now(),
	}
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		slog.Error("notify_outbox_save_failed", "entry_id", entry.ID, "error", err)
		return
	}
	slog.Info("notify_queued", "entry_id", entry.ID, "to_count", len(to), "subject", subject)
}

// bookingRequestedBody renders the notification sent to a programmer when a
// student books an appointment.
func bookingRequestedBody(studentName, studentEmail, date, clock, topic string) string {
	return fmt.Sprintf(
		`<p>Tienes una nueva solicitud de asesoría.</p>
<ul>
<li><strong>Estudiante:</strong> %s (%s)</li>
<li><strong>Fecha:</strong> %s a las %s</li>
<li><strong>Tema:</strong> %s</li>
</ul>
<p>Ingresa a tu panel para aprobarla o rechazarla.</p>`,
		html.EscapeString(studentName),
		html.EscapeString(studentEmail),
		html.EscapeString(date),
		html.EscapeString(clock),
		html.EscapeString(topic),
	)
}

// bookingRespondedBody renders the notification sent to a student when the
// programmer responds to a booking.
func bookingRespondedBody(programmerName, date, clock, status, message string) string {
	return fmt.Sprintf(
		`<p>Tu asesoría con %s del %s a las %s fue <strong>%s</strong>.</p>
<p>Mensaje: %s</p>`,
		html.EscapeString(programmerName),
		html.EscapeString(date),
		html.EscapeString(clock),
		html.EscapeString(status),
		html.EscapeString(message),
	)
}
