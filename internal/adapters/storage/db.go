package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLDB is the database interface used by all stores. Both the SQLite and
// Postgres connections satisfy it, so every store adapter works against
// either backend.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// OpenSQLite opens the SQLite database with WAL mode, foreign keys, and a
// busy timeout, and verifies connectivity.
// PRE: path is a writable file path
// POST: Returns an open, pinged connection
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("sqlite unreachable: %w", err)
	}
	return db, nil
}

// InitSQLite initializes the SQLite database schema.
// PRE: db is a valid database connection
// POST: All tables are created
func InitSQLite(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS programmer (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		specialty TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		linkedin TEXT NOT NULL DEFAULT '',
		github TEXT NOT NULL DEFAULT '',
		portfolio_url TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS availability_window (
		id TEXT PRIMARY KEY,
		programmer_id TEXT NOT NULL,
		day TEXT NOT NULL COLLATE NOCASE,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		UNIQUE (programmer_id, day),
		FOREIGN KEY (programmer_id) REFERENCES programmer(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS appointment (
		id TEXT PRIMARY KEY,
		programmer_id TEXT NOT NULL,
		programmer_name TEXT NOT NULL DEFAULT '',
		student_email TEXT NOT NULL,
		student_name TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		response_message TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS project (
		id TEXT PRIMARY KEY,
		programmer_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		participation TEXT NOT NULL DEFAULT '',
		technologies TEXT NOT NULL DEFAULT '',
		repo_url TEXT NOT NULL DEFAULT '',
		demo_url TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (programmer_id) REFERENCES programmer(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT,
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS audit_event (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		category TEXT NOT NULL,
		action TEXT NOT NULL,
		severity TEXT NOT NULL,
		actor_email TEXT NOT NULL,
		actor_role TEXT NOT NULL DEFAULT '',
		resource_id TEXT NOT NULL DEFAULT '',
		resource_type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_appointment_student ON appointment(student_email);
	CREATE INDEX IF NOT EXISTS idx_appointment_programmer ON appointment(programmer_id);
	CREATE INDEX IF NOT EXISTS idx_project_programmer ON project(programmer_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
