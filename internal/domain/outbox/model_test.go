package outbox_test

import (
	"errors"
	"testing"
	"time"

	"advisory/internal/domain/outbox"
)

// TestEntry_Lifecycle tests attempt/success/failure transitions.
func TestEntry_Lifecycle(t *testing.T) {
	e := outbox.Entry{
		ID:          "o-1",
		ActionType:  outbox.ActionTypeEmail,
		Payload:     `{"to":["s@example.com"]}`,
		Status:      outbox.StatusPending,
		MaxAttempts: 3,
		CreatedAt:   time.Now(),
	}

	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !e.CanRetry() || e.IsTerminal() {
		t.Fatal("fresh entry should be retryable and non-terminal")
	}

	e.MarkAttempt()
	e.MarkFailed(errors.New("provider down"))
	if e.Status != outbox.StatusRetrying || e.ErrorMessage == "" {
		t.Errorf("after first failure: status %q, error %q", e.Status, e.ErrorMessage)
	}

	e.MarkAttempt()
	e.MarkAttempt()
	e.MarkFailed(errors.New("provider still down"))
	if e.Status != outbox.StatusFailed || !e.IsTerminal() || e.CanRetry() {
		t.Errorf("after exhausting attempts: status %q, terminal %v, canRetry %v", e.Status, e.IsTerminal(), e.CanRetry())
	}
}

// TestEntry_MarkSuccess tests completion clears the error state.
func TestEntry_MarkSuccess(t *testing.T) {
	e := outbox.Entry{Status: outbox.StatusRetrying, Attempts: 1, MaxAttempts: 5, ErrorMessage: "old"}
	e.MarkSuccess("msg-123")
	if e.Status != outbox.StatusDone || e.ExternalID != "msg-123" || e.ErrorMessage != "" {
		t.Errorf("MarkSuccess() left %+v", e)
	}
	if !e.IsTerminal() {
		t.Error("done entry should be terminal")
	}
}

// TestEntry_NextRetryDelay tests exponential backoff with a cap.
func TestEntry_NextRetryDelay(t *testing.T) {
	base, max := time.Minute, 30*time.Minute
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{attempts: 0, want: time.Minute},
		{attempts: 1, want: 2 * time.Minute},
		{attempts: 3, want: 8 * time.Minute},
		{attempts: 10, want: 30 * time.Minute},
	}
	for _, tt := range tests {
		e := outbox.Entry{Attempts: tt.attempts}
		if got := e.NextRetryDelay(base, max); got != tt.want {
			t.Errorf("NextRetryDelay(attempts=%d) = %v, want %v", tt.attempts, got, tt.want)
		}
	}
}

// TestEntry_Validate tests required fields.
func TestEntry_Validate(t *testing.T) {
	e := outbox.Entry{Payload: "{}", CreatedAt: time.Now()}
	if err := e.Validate(); !errors.Is(err, outbox.ErrEmptyActionType) {
		t.Errorf("Validate() error = %v, want ErrEmptyActionType", err)
	}
	e.ActionType = outbox.ActionTypeEmail
	e.Payload = ""
	if err := e.Validate(); !errors.Is(err, outbox.ErrEmptyPayload) {
		t.Errorf("Validate() error = %v, want ErrEmptyPayload", err)
	}
}
