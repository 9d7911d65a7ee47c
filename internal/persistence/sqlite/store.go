// Package sqlite persists dashboard session state in an embedded SQLite
// database, the server-side stand-in for the browser storage the backend API
// assumes its callers have.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/coinomad/payroll-dashboard/internal/session"
)

// Store implements session.Store on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the database at dsn and applies pending migrations.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}
	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping %q: %w", dsn, err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession inserts a session row, replacing any row with the same ID.
func (s *Store) SaveSession(ctx context.Context, rec session.Record) error {
	const query = `
		INSERT OR REPLACE INTO sessions (id, sealed_token, first_name, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.SealedToken,
		rec.FirstName,
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.ExpiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save session: %w", err)
	}
	return nil
}

// FindSession loads a session row by ID.
func (s *Store) FindSession(ctx context.Context, id string) (session.Record, error) {
	const query = `
		SELECT id, sealed_token, first_name, created_at, expires_at
		FROM sessions
		WHERE id = ?
	`
	var rec session.Record
	var createdAt, expiresAt string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.SealedToken,
		&rec.FirstName,
		&createdAt,
		&expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Record{}, session.ErrNotFound
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("sqlite: find session: %w", err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return session.Record{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	if rec.ExpiresAt, err = time.Parse(time.RFC3339, expiresAt); err != nil {
		return session.Record{}, fmt.Errorf("sqlite: parse expires_at: %w", err)
	}
	return rec, nil
}

// DeleteSession removes a session row.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete session: %w", err)
	}
	if affected == 0 {
		return session.ErrNotFound
	}
	return nil
}

// SavePendingSignup inserts a pending-signup row, replacing any row with the
// same ID.
func (s *Store) SavePendingSignup(ctx context.Context, pending session.PendingSignup) error {
	const query = `
		INSERT OR REPLACE INTO pending_signups (id, email, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		pending.ID,
		pending.Email,
		pending.CreatedAt.UTC().Format(time.RFC3339),
		pending.ExpiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save pending signup: %w", err)
	}
	return nil
}

// FindPendingSignup loads a pending-signup row by ID.
func (s *Store) FindPendingSignup(ctx context.Context, id string) (session.PendingSignup, error) {
	const query = `
		SELECT id, email, created_at, expires_at
		FROM pending_signups
		WHERE id = ?
	`
	var pending session.PendingSignup
	var createdAt, expiresAt string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&pending.ID,
		&pending.Email,
		&createdAt,
		&expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return session.PendingSignup{}, session.ErrNotFound
	}
	if err != nil {
		return session.PendingSignup{}, fmt.Errorf("sqlite: find pending signup: %w", err)
	}
	if pending.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return session.PendingSignup{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	if pending.ExpiresAt, err = time.Parse(time.RFC3339, expiresAt); err != nil {
		return session.PendingSignup{}, fmt.Errorf("sqlite: parse expires_at: %w", err)
	}
	return pending, nil
}

// DeletePendingSignup removes a pending-signup row.
func (s *Store) DeletePendingSignup(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pending_signups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete pending signup: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete pending signup: %w", err)
	}
	if affected == 0 {
		return session.ErrNotFound
	}
	return nil
}

// DeleteExpired removes all rows whose expiry is at or before now.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) error {
	cutoff := now.UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, cutoff); err != nil {
		return fmt.Errorf("sqlite: sweep sessions: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pending_signups WHERE expires_at <= ?`, cutoff); err != nil {
		return fmt.Errorf("sqlite: sweep pending signups: %w", err)
	}
	return nil
}
