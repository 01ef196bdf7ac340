package programmer

import (
	"context"
	"database/sql"
	"fmt"

	"advisory/internal/adapters/storage"
	"advisory/internal/domain/availability"
	domain "advisory/internal/domain/programmer"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db storage.SQLDB
}

// NewPostgresStore creates a new programmer store.
func NewPostgresStore(db storage.SQLDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetByID retrieves a Programmer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *PostgresStore) GetByID(ctx context.Context, id string) (domain.Programmer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+programmerColumns+" FROM programmer WHERE id = $1", id)
	entity, err := scanProgrammer(row)
	if err == sql.ErrNoRows {
		return domain.Programmer{}, fmt.Errorf("programmer not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves a Programmer by contact email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (domain.Programmer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+programmerColumns+" FROM programmer WHERE lower(email) = lower($1)", email)
	entity, err := scanProgrammer(row)
	if err == sql.ErrNoRows {
		return domain.Programmer{}, fmt.Errorf("programmer not found: %w", err)
	}
	return entity, err
}

// Save persists a Programmer to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *PostgresStore) Save(ctx context.Context, entity domain.Programmer) error {
	query := `INSERT INTO programmer (id, name, specialty, description, photo_url, role, email, linkedin, github, portfolio_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name=excluded.name,
			specialty=excluded.specialty,
			description=excluded.description,
			photo_url=excluded.photo_url,
			role=excluded.role,
			email=excluded.email,
			linkedin=excluded.linkedin,
			github=excluded.github,
			portfolio_url=excluded.portfolio_url`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Specialty,
		entity.Description,
		entity.PhotoURL,
		entity.Role,
		entity.Contact.Email,
		entity.Contact.LinkedIn,
		entity.Contact.GitHub,
		entity.Contact.PortfolioURL,
	)
	return err
}

// Delete removes a Programmer. Availability windows and projects cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM programmer WHERE id = $1", id)
	return err
}

// List retrieves all Programmers ordered by name.
// POST: Returns all entities
func (s *PostgresStore) List(ctx context.Context) ([]domain.Programmer, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+programmerColumns+" FROM programmer ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Programmer
	for rows.Next() {
		entity, err := scanProgrammer(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListWindows retrieves the weekly windows for one programmer.
// PRE: programmerID is non-empty
// POST: Returns windows ordered by insertion
func (s *PostgresStore) ListWindows(ctx context.Context, programmerID string) ([]availability.Window, error) {
	query := "SELECT id, programmer_id, day, start_time, end_time FROM availability_window WHERE programmer_id = $1"
	rows, err := s.db.QueryContext(ctx, query, programmerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []availability.Window
	for rows.Next() {
		var w availability.Window
		if err := rows.Scan(&w.ID, &w.ProgrammerID, &w.Day, &w.StartTime, &w.EndTime); err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	return results, rows.Err()
}

// SaveWindow persists one availability window. The (programmer_id, day)
// uniqueness constraint rejects a second window on the same weekday.
// PRE: value has been validated
// POST: Window is persisted (insert or update)
func (s *PostgresStore) SaveWindow(ctx context.Context, value availability.Window) error {
	query := `INSERT INTO availability_window (id, programmer_id, day, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			day=excluded.day,
			start_time=excluded.start_time,
			end_time=excluded.end_time`

	_, err := s.db.ExecContext(ctx, query, value.ID, value.ProgrammerID, value.Day, value.StartTime, value.EndTime)
	return err
}

// DeleteWindow removes one window, scoped to its owner.
// PRE: id and programmerID are non-empty
// POST: Window is removed if it belonged to the programmer
func (s *PostgresStore) DeleteWindow(ctx context.Context, id, programmerID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM availability_window WHERE id = $1 AND programmer_id = $2", id, programmerID)
	return err
}
