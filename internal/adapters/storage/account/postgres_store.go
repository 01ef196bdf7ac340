package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"advisory/internal/adapters/storage"
	domain "advisory/internal/domain/account"
)

// PostgresStore implements Store using PostgreSQL. Queries mirror the
// SQLite adapter but use positional placeholders and case-folded email
// comparison, which COLLATE NOCASE handles on the SQLite side.
type PostgresStore struct {
	db storage.SQLDB
}

// NewPostgresStore creates a new account store.
func NewPostgresStore(db storage.SQLDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *PostgresStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE id = $1", id)
	entity, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE lower(email) = lower($1)", email)
	entity, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *PostgresStore) Save(ctx context.Context, entity domain.Account) error {
	var lockedUntil any
	if !entity.LockedUntil.IsZero() {
		lockedUntil = entity.LockedUntil.Format(time.RFC3339)
	}

	query := `INSERT INTO account (id, email, password_hash, role, created_at, failed_logins, locked_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			email=excluded.email,
			password_hash=excluded.password_hash,
			role=excluded.role,
			failed_logins=excluded.failed_logins,
			locked_until=excluded.locked_until`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Email,
		entity.PasswordHash,
		entity.Role,
		entity.CreatedAt.Format(time.RFC3339),
		entity.FailedLogins,
		lockedUntil,
	)
	return err
}

// Delete removes an Account from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM account WHERE id = $1", id)
	return err
}

// Count returns the total number of accounts.
// POST: Returns count >= 0
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&count)
	return count, err
}
