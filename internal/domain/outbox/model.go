package outbox

import (
	"errors"
	"time"
)

// Status constants for the entry lifecycle.
const (
	StatusPending   = "pending"
	StatusRetrying  = "retrying"
	StatusDone      = "done"
	StatusFailed    = "failed"
	StatusAbandoned = "abandoned"
)

// Action type constants for external integrations.
const (
	ActionTypeEmail = "email"
)

// Domain errors.
var (
	ErrEmptyActionType = errors.New("action type is required")
	ErrEmptyPayload    = errors.New("payload is required")
)

// DefaultMaxAttempts bounds how often an entry is retried before it is
// considered permanently failed.
const DefaultMaxAttempts = 5

// Entry represents a single external integration action in the outbox.
// Booking and response notifications are fire-and-forget: a failed send lands
// here and is replayed by the background worker.
type Entry struct {
	ID              string
	ActionType      string // e.g., "email"
	Payload         string // JSON payload for replay
	Status          string // pending, retrying, done, failed, abandoned
	Attempts        int
	MaxAttempts     int
	LastAttemptedAt time.Time
	CreatedAt       time.Time
	ExternalID      string // provider message ID once delivered
	ErrorMessage    string // last error message if failed
}

// Validate checks that the Entry has valid data and fills the attempt bound.
// POST: Returns nil if valid; MaxAttempts is positive
func (e *Entry) Validate() error {
	if e.ActionType == "" {
		return ErrEmptyActionType
	}
	if e.Payload == "" {
		return ErrEmptyPayload
	}
	if e.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	if e.MaxAttempts <= 0 {
		e.MaxAttempts = DefaultMaxAttempts
	}
	return nil
}

// CanRetry reports whether the entry is eligible for another attempt.
// POST: Returns true for pending/retrying/failed with attempts remaining
func (e *Entry) CanRetry() bool {
	if e.Attempts >= e.MaxAttempts {
		return false
	}
	switch e.Status {
	case StatusPending, StatusRetrying, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the entry will never be retried again.
// POST: Returns true for done, abandoned, or failed with attempts exhausted
func (e *Entry) IsTerminal() bool {
	switch e.Status {
	case StatusDone, StatusAbandoned:
		return true
	case StatusFailed:
		return e.Attempts >= e.MaxAttempts
	}
	return false
}

// MarkAttempt records a delivery attempt.
// POST: Attempts incremented, LastAttemptedAt updated, status set to retrying
func (e *Entry) MarkAttempt() {
	e.Attempts++
	e.LastAttemptedAt = time.Now()
	e.Status = StatusRetrying
}

// MarkSuccess marks the entry as delivered.
// POST: Status set to done, ExternalID recorded, error cleared
func (e *Entry) MarkSuccess(externalID string) {
	e.Status = StatusDone
	e.ExternalID = externalID
	e.ErrorMessage = ""
}

// MarkFailed records a failed attempt. The entry stays retryable until the
// attempt bound is reached.
// POST: ErrorMessage set; Status set to failed once attempts are exhausted
func (e *Entry) MarkFailed(err error) {
	e.ErrorMessage = err.Error()
	if e.Attempts >= e.MaxAttempts {
		e.Status = StatusFailed
	}
}

// NextRetryDelay returns the backoff before the next attempt, doubling per
// attempt from baseDelay up to maxDelay.
// POST: baseDelay <= result <= maxDelay
func (e *Entry) NextRetryDelay(baseDelay, maxDelay time.Duration) time.Duration {
	delay := baseDelay << e.Attempts
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}
