package project

import (
	"context"
	"database/sql"
	"fmt"

	"advisory/internal/adapters/storage"
	domain "advisory/internal/domain/project"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db storage.SQLDB
}

// NewPostgresStore creates a new project store.
func NewPostgresStore(db storage.SQLDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetByID retrieves a Project by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *PostgresStore) GetByID(ctx context.Context, id string) (domain.Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM project WHERE id = $1", id)
	entity, err := scanProject(row)
	if err == sql.ErrNoRows {
		return domain.Project{}, fmt.Errorf("project not found: %w", err)
	}
	return entity, err
}

// Save persists a Project to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *PostgresStore) Save(ctx context.Context, entity domain.Project) error {
	query := `INSERT INTO project (id, programmer_id, title, description, category, participation, technologies, repo_url, demo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title=excluded.title,
			description=excluded.description,
			category=excluded.category,
			participation=excluded.participation,
			technologies=excluded.technologies,
			repo_url=excluded.repo_url,
			demo_url=excluded.demo_url`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ProgrammerID,
		entity.Title,
		entity.Description,
		entity.Category,
		entity.Participation,
		entity.Technologies,
		entity.RepoURL,
		entity.DemoURL,
	)
	return err
}

// Delete removes a Project from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM project WHERE id = $1", id)
	return err
}

// ListByProgrammer retrieves all projects owned by one programmer,
// ordered by title.
// PRE: programmerID is non-empty
// POST: Returns matching entities
func (s *PostgresStore) ListByProgrammer(ctx context.Context, programmerID string) ([]domain.Project, error) {
	query := "SELECT " + projectColumns + " FROM project WHERE programmer_id = $1 ORDER BY title"
	rows, err := s.db.QueryContext(ctx, query, programmerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Project
	for rows.Next() {
		entity, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
