package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers booking and response notifications through the
// Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender builds a sender with the given API key. The from address
// is used when a request does not carry its own.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers a single email.
// PRE: req has at least one recipient and a subject
// POST: Email is accepted by Resend; returns the provider message ID
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	from := req.From
	if from == "" {
		from = s.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		params.ReplyTo = req.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Error("email_send_failed", "provider", "resend", "error", err, "to", req.To, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("email_sent", "provider", "resend", "message_id", sent.Id, "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}
