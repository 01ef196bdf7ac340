package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs sends without delivering anything. It is the development
// default when no Resend key is configured.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the email and reports success.
// POST: Returns a synthetic message ID without actual delivery
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	slog.Info("email_send_skipped", "provider", "noop", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
