package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql
var postgresMigrations embed.FS

// OpenPostgres opens a pgx connection pool for the given DSN and exposes it
// as a *sql.DB so the same store adapters run against either backend.
// PRE: dsn is a valid Postgres connection string
// POST: Returns a pinged connection backed by a pgx pool
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres unreachable: %w", err)
	}
	return stdlib.OpenDBFromPool(pool), pool, nil
}

// MigratePostgres applies the embedded goose migrations.
// PRE: db was opened by OpenPostgres
// POST: Schema is at the latest migration version
func MigratePostgres(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(postgresMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations/postgres"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
