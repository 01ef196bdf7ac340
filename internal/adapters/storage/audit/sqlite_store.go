package audit

import (
	"context"
	"time"

	"advisory/internal/adapters/storage"
	domain "advisory/internal/domain/audit"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new audit store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const auditColumns = "id, timestamp, category, action, severity, actor_email, actor_role, resource_id, resource_type, description"

func scanEvent(row interface{ Scan(...any) error }) (domain.Event, error) {
	var entity domain.Event
	var timestamp string
	err := row.Scan(
		&entity.ID,
		&timestamp,
		&entity.Category,
		&entity.Action,
		&entity.Severity,
		&entity.ActorEmail,
		&entity.ActorRole,
		&entity.ResourceID,
		&entity.ResourceType,
		&entity.Description,
	)
	if err != nil {
		return domain.Event{}, err
	}
	entity.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
	return entity, nil
}

// Save appends an audit event.
// PRE: value has an ID and timestamp
// POST: Event is persisted
func (s *SQLiteStore) Save(ctx context.Context, value domain.Event) error {
	query := `INSERT INTO audit_event (id, timestamp, category, action, severity, actor_email, actor_role, resource_id, resource_type, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Event, error) {
	query := "SELECT " + auditColumns + " FROM audit_event ORDER BY timestamp DESC LIMIT ?"
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
