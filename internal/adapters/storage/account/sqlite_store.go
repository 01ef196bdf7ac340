package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"advisory/internal/adapters/storage"
	domain "advisory/internal/domain/account"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const accountColumns = "id, email, password_hash, role, created_at, failed_logins, locked_until"

func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var entity domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Email,
		&entity.PasswordHash,
		&entity.Role,
		&createdAt,
		&entity.FailedLogins,
		&lockedUntil,
	)
	if err != nil {
		return domain.Account{}, err
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if lockedUntil.Valid && lockedUntil.String != "" {
		entity.LockedUntil, _ = time.Parse(time.RFC3339, lockedUntil.String)
	}
	return entity, nil
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE id = ?", id)
	entity, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE email = ? COLLATE NOCASE", email)
	entity, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	var lockedUntil any
	if !entity.LockedUntil.IsZero() {
		lockedUntil = entity.LockedUntil.Format(time.RFC3339)
	}

	query := `INSERT INTO account (id, email, password_hash, role, created_at, failed_logins, locked_until)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
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
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM account WHERE id = ?", id)
	return err
}

// Count returns the total number of accounts.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&count)
	return count, err
}
