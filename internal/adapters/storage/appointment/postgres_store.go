package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"advisory/internal/adapters/storage"
	domain "advisory/internal/domain/appointment"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db storage.SQLDB
}

// NewPostgresStore creates a new appointment store.
func NewPostgresStore(db storage.SQLDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetByID retrieves an Appointment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *PostgresStore) GetByID(ctx context.Context, id string) (domain.Appointment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+appointmentColumns+" FROM appointment WHERE id = $1", id)
	entity, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return domain.Appointment{}, fmt.Errorf("appointment not found: %w", err)
	}
	return entity, err
}

// Save persists an Appointment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *PostgresStore) Save(ctx context.Context, entity domain.Appointment) error {
	query := `INSERT INTO appointment (id, programmer_id, programmer_name, student_email, student_name, date, time, topic, status, response_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status=excluded.status,
			response_message=excluded.response_message`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ProgrammerID,
		entity.ProgrammerName,
		entity.StudentEmail,
		entity.StudentName,
		entity.Date,
		entity.Time,
		entity.Topic,
		entity.Status,
		entity.ResponseMessage,
		entity.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// Delete removes an Appointment from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM appointment WHERE id = $1", id)
	return err
}

// ListByStudent retrieves the appointments booked by one student,
// newest first.
// PRE: studentEmail is non-empty
// POST: Returns matching entities
func (s *PostgresStore) ListByStudent(ctx context.Context, studentEmail string) ([]domain.Appointment, error) {
	query := "SELECT " + appointmentColumns + " FROM appointment WHERE lower(student_email) = lower($1) ORDER BY date DESC, time DESC"
	return s.list(ctx, query, studentEmail)
}

// ListByProgrammer retrieves the appointments addressed to one programmer,
// newest first.
// PRE: programmerID is non-empty
// POST: Returns matching entities
func (s *PostgresStore) ListByProgrammer(ctx context.Context, programmerID string) ([]domain.Appointment, error) {
	query := "SELECT " + appointmentColumns + " FROM appointment WHERE programmer_id = $1 ORDER BY date DESC, time DESC"
	return s.list(ctx, query, programmerID)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Appointment
	for rows.Next() {
		entity, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
