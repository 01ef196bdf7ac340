package audit

import (
	"context"

	domain "advisory/internal/domain/audit"
)

// Store persists audit events. Events are append-only.
type Store interface {
	Save(ctx context.Context, value domain.Event) error
	List(ctx context.Context, limit int) ([]domain.Event, error)
}
