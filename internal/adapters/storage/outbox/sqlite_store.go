package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"advisory/internal/adapters/storage"
	domain "advisory/internal/domain/outbox"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new outbox store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const outboxColumns = "id, action_type, payload, status, attempts, max_attempts, last_attempted_at, created_at, external_id, error_message"

func scanEntry(row interface{ Scan(...any) error }) (domain.Entry, error) {
	var entity domain.Entry
	var lastAttempted sql.NullString
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.ActionType,
		&entity.Payload,
		&entity.Status,
		&entity.Attempts,
		&entity.MaxAttempts,
		&lastAttempted,
		&createdAt,
		&entity.ExternalID,
		&entity.ErrorMessage,
	)
	if err != nil {
		return domain.Entry{}, err
	}
	if lastAttempted.Valid && lastAttempted.String != "" {
		entity.LastAttemptedAt, _ = time.Parse(time.RFC3339, lastAttempted.String)
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return entity, nil
}

// GetByID retrieves an Entry by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+outboxColumns+" FROM outbox WHERE id = ?", id)
	entity, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return domain.Entry{}, fmt.Errorf("outbox entry not found: %w", err)
	}
	return entity, err
}

// Save persists an Entry to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Entry) error {
	var lastAttempted any
	if !entity.LastAttemptedAt.IsZero() {
		lastAttempted = entity.LastAttemptedAt.Format(time.RFC3339)
	}

	query := `INSERT INTO outbox (id, action_type, payload, status, attempts, max_attempts, last_attempted_at, created_at, external_id, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status=excluded.status,
			attempts=excluded.attempts,
			last_attempted_at=excluded.last_attempted_at,
			external_id=excluded.external_id,
			error_message=excluded.error_message`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ActionType,
		entity.Payload,
		entity.Status,
		entity.Attempts,
		entity.MaxAttempts,
		lastAttempted,
		entity.CreatedAt.Format(time.RFC3339),
		entity.ExternalID,
		entity.ErrorMessage,
	)
	return err
}

// ListRetryable retrieves entries eligible for a retry attempt, oldest first.
// PRE: limit > 0
// POST: Returns entries in pending/retrying/failed state with attempts left
func (s *SQLiteStore) ListRetryable(ctx context.Context, limit int) ([]domain.Entry, error) {
	query := "SELECT " + outboxColumns + ` FROM outbox
		WHERE status IN ('pending', 'retrying', 'failed') AND attempts < max_attempts
		ORDER BY created_at LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Entry
	for rows.Next() {
		entity, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
