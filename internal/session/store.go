// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session persists the bearer token for the document service.
// The token is the only client state that survives restarts; an absent
// token means no authenticated request may be attempted.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// TokenSource is the read/invalidate surface the resource client needs.
// The full Store additionally supports Set for the login flow.
type TokenSource interface {
	// Get returns the current token, or "" when no session exists.
	Get() (string, error)

	// Clear erases the session. Callers must transition to an
	// unauthenticated state afterwards; Clear itself is never retried.
	Clear() error
}

// Store keeps the session token in a single-row sqlite table.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the state database location under the user config
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "docproc", "state.db"), nil
}

// Open opens or creates the session database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	// Single-row table: id is fixed at 1 so Set is a plain upsert.
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		saved_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	return err
}

// Set stores token, replacing any prior session.
func (s *Store) Set(token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store empty token")
	}
	_, err := s.db.Exec(`INSERT INTO session (id, token, saved_at)
		VALUES (1, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at`,
		token)
	if err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}
	return nil
}

// Get returns the stored token, or "" when no session exists.
func (s *Store) Get() (string, error) {
	var token string
	err := s.db.QueryRow(`SELECT token FROM session WHERE id = 1`).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session token: %w", err)
	}
	return token, nil
}

// Clear erases the session.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
