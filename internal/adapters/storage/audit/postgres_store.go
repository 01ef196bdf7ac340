package audit

import (
	"context"
	"time"

	"advisory/internal/adapters/storage"
	domain "advisory/internal/domain/audit"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db storage.SQLDB
}

// NewPostgresStore creates a new audit store.
func NewPostgresStore(db storage.SQLDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save appends an audit event.
// PRE: value has an ID and timestamp
// POST: Event is persisted
func (s *PostgresStore) Save(ctx context.Context, value domain.Event) error {
	query := `INSERT INTO audit_event (id, timestamp, category, action, severity, actor_email, actor_role, resource_id, resource_type, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		value.ID,
		value.Timestamp.Format(time.RFC3339),
		value.Category,
		value.Action,
		value.Severity,
		value.ActorEmail,
		value.ActorRole,
		value.ResourceID,
		value.ResourceType,
		value.Description,
	)
	return err
}

// List retrieves the most recent audit events, newest first.
// PRE: limit > 0
// POST: Returns at most limit events
func (s *PostgresStore) List(ctx context.Context, limit int) ([]domain.Event, error) {
	query := "SELECT " + auditColumns + " FROM audit_event ORDER BY timestamp DESC LIMIT $1"
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		entity, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
