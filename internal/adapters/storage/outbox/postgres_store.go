package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"advisory/internal/adapters/storage"
	domain "advisory/internal/domain/outbox"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db storage.SQLDB
}

// NewPostgresStore creates a new outbox store.
func NewPostgresStore(db storage.SQLDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetByID retrieves an Entry by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *PostgresStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+outboxColumns+" FROM outbox WHERE id = $1", id)
	entity, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return domain.Entry{}, fmt.Errorf("outbox entry not found: %w", err)
	}
	return entity, err
}

// Save persists an Entry to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *PostgresStore) Save(ctx context.Context, entity domain.Entry) error {
	var lastAttempted any
	if !entity.LastAttemptedAt.IsZero() {
		lastAttempted = entity.LastAttemptedAt.Format(time.RFC3339)
	}

	query := `INSERT INTO outbox (id, action_type, payload, status, attempts, max_attempts, last_attempted_at, created_at, external_id, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
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
func (s *PostgresStore) ListRetryable(ctx context.Context, limit int) ([]domain.Entry, error) {
	query := "SELECT " + outboxColumns + ` FROM outbox
		WHERE status IN ('pending', 'retrying', 'failed') AND attempts < max_attempts
		ORDER BY created_at LIMIT $1`

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
