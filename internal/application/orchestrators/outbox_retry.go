package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "advisory/internal/adapters/email"
	domainOutbox "advisory/internal/domain/outbox"
)

// OutboxStoreForRetry defines the store interface needed by the retry worker.
type OutboxStoreForRetry interface {
	Save(ctx context.Context, e domainOutbox.Entry) error
	ListRetryable(ctx context.Context, limit int) ([]domainOutbox.Entry, error)
}

// OutboxRetryDeps provides the dependencies for retrying outbox entries.
type OutboxRetryDeps struct {
	OutboxStore OutboxStoreForRetry
	EmailSender emailAdapter.Sender
	FromAddress string
}

// ExecuteOutboxRetry processes pending and retryable failed outbox entries.
// It implements exponential backoff and respects max attempts.
// PRE: Deps are valid and store is connected
// POST: All eligible entries are processed, results logged
func ExecuteOutboxRetry(ctx context.Context, deps OutboxRetryDeps) error {
	entries, err := deps.OutboxStore.ListRetryable(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to list retryable outbox entries: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	slog.Info("outbox_retry_start", "count", len(entries))

	var processed, succeeded, failed int
	baseDelay := 1 * time.Minute
	maxDelay := 1 * time.Hour

	for _, entry := range entries {
		processed++

		// Check if enough time has passed since last attempt
		if !entry.LastAttemptedAt.IsZero() {
			nextRetry := entry.LastAttemptedAt.Add(entry.NextRetryDelay(baseDelay, maxDelay))
			if time.Now().Before(nextRetry) {
				slog.Debug("outbox_retry_skipped_backoff", "entry_id", entry.ID, "next_retry", nextRetry)
				continue
			}
		}

		entry.MarkAttempt()

		var externalID string
		switch entry.ActionType {
		case domainOutbox.ActionTypeEmail:
			externalID, err = retryEmail(ctx, deps, entry)
		default:
			err = fmt.Errorf("unknown action type: %s", entry.ActionType)
		}

		if err != nil {
			entry.MarkFailed(err)
			failed++
			slog.Error("outbox_retry_failed", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts, "error", err)
		} else {
			entry.MarkSuccess(externalID)
			succeeded++
			slog.Info("outbox_retry_succeeded", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts)
		}

		if saveErr := deps.OutboxStore.Save(ctx, entry); saveErr != nil {
			slog.Error("outbox_retry_save_failed", "entry_id", entry.ID, "error", saveErr)
		}
	}

	slog.Info("outbox_retry_complete", "processed", processed, "succeeded", succeeded, "failed", failed)
	return nil
}

// retryEmail re-sends a queued notification email from the outbox payload.
// PRE: Entry payload is a marshalled emailPayload
// POST: Email sent and provider message ID returned, or error
func retryEmail(ctx context.Context, deps OutboxRetryDeps, entry domainOutbox.Entry) (string, error) {
	var payload emailPayload
	if err := json.Unmarshal([]byte(entry.Payload), &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal email payload: %w", err)
	}

	result, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      payload.To,
		From:    deps.FromAddress,
		Subject: payload.Subject,
		HTML:    payload.HTML,
		ReplyTo: payload.ReplyTo,
	})
	if err != nil {
		return "", err
	}
	return result.MessageID, nil
}

// OutboxRetryConfig holds configuration for the retry scheduler.
type OutboxRetryConfig struct {
	Interval time.Duration // How often to run retries
	Enabled  bool
}

// DefaultOutboxRetryConfig returns sensible defaults.
func DefaultOutboxRetryConfig() OutboxRetryConfig {
	return OutboxRetryConfig{
		Interval: 5 * time.Minute,
		Enabled:  true,
	}
}

// StartOutboxRetryScheduler starts a background goroutine that periodically retries outbox entries.
// PRE: Context is valid, deps are initialized
// POST: Goroutine started, returns cancel function
func StartOutboxRetryScheduler(ctx context.Context, deps OutboxRetryDeps, cfg OutboxRetryConfig) func() {
	if !cfg.Enabled {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := ExecuteOutboxRetry(ctx, deps); err != nil {
					slog.Error("outbox_retry_scheduler_error", "error", err)
				}
			}
		}
	}()

	return cancel
}
