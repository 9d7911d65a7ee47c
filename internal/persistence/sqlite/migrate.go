package sqlite

import (
	"database/sql"
	"fmt"
)

// migration is a single schema step. Versions are applied in order and
// recorded in schema_migrations so reruns are no-ops.
type migration struct {
	version int
	name    string
	stmt    string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create sessions",
		stmt: `
			CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				sealed_token BLOB NOT NULL,
				first_name TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL,
				expires_at TEXT NOT NULL
			)
		`,
	},
	{
		version: 2,
		name:    "create pending signups",
		stmt: `
			CREATE TABLE IF NOT EXISTS pending_signups (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL,
				created_at TEXT NOT NULL,
				expires_at TEXT NOT NULL
			)
		`,
	},
	{
		version: 3,
		name:    "index session expiry",
		stmt:    `CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at)`,
	},
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("sqlite: create schema_migrations: %w", err)
	}

	var current sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	for _, m := range migrations {
		if current.Valid && int64(m.version) <= current.Int64 {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin migration %d: %w", m.version, err)
	}
	if _, err := tx.Exec(m.stmt); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite: apply migration %d (%s): %w", m.version, m.name, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite: record migration %d: %w", m.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit migration %d: %w", m.version, err)
	}
	return nil
}
