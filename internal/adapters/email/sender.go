// Package email holds the outbound email port and its provider adapters.
package email

import (
	"context"
	"time"
)

// SendRequest is one outbound notification (booking received, response sent,
// password reset).
type SendRequest struct {
	To      []string
	From    string // e.g. "Asesorías <noreply@advisoria.local>"; sender default applies when empty
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult is the provider's acknowledgement of an accepted send.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender is the interface for sending emails via an external provider.
// Notifications go out one at a time; failures are parked in the outbox
// and replayed by the retry worker.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
