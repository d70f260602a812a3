// Package sqlstore implements the repository interfaces on database/sql.
//
// Two backends are supported, selected by the connection string:
//
//   - a postgres:// or postgresql:// URL opens Postgres via lib/pq
//     (the production deployment target)
//   - anything else is treated as a SQLite file path and opened via the
//     pure-Go modernc.org/sqlite driver (local development and tests;
//     ":memory:" gives a throwaway in-memory database)
//
// The SQL in api.go and user.go is written once with ? placeholders; rebind
// converts them to $1..$N for Postgres. The only other dialect differences
// are the schema DDL and how inserts report the generated id (RETURNING vs
// LastInsertId), both handled here.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store wraps a sql.DB connection pool and implements
// repository.APIRepository and repository.UserRepository.
type Store struct {
	conn     *sql.DB
	postgres bool
}

// New opens the database named by dsn, verifies the connection, and runs
// the idempotent schema initialization.
func New(dsn string) (*Store, error) {
	driver := "sqlite"
	postgres := false
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
		postgres = true
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: opening database: %w", err)
	}

	// Ping forces a real connection now, so a bad path or unreachable
	// server fails at startup instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlstore: pinging database: %w", err)
	}

	if !postgres {
		// WAL lets concurrent reads proceed during a write. Foreign keys
		// are off by default in SQLite for legacy reasons.
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlstore: setting WAL mode: %w", err)
		}
		if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlstore: enabling foreign keys: %w", err)
		}
	}

	s := &Store{conn: conn, postgres: postgres}

	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlstore: running migrations: %w", err)
	}

	return s, nil
}

// Close closes the connection pool. Callers should defer this right after New.
func (s *Store) Close() error {
	return s.conn.Close()
}

// migrate creates the tables if they don't exist. Safe to run on every
// startup — CREATE TABLE IF NOT EXISTS never errors on an existing table.
func (s *Store) migrate() error {
	var apisDDL, usersDDL string

	if s.postgres {
		apisDDL = `
		CREATE TABLE IF NOT EXISTS apis (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			tech        TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			url         TEXT NOT NULL DEFAULT '',
			code        TEXT NOT NULL DEFAULT '',
			rating      INTEGER NOT NULL DEFAULT 0,
			endpoint    TEXT NOT NULL DEFAULT '',
			method      TEXT NOT NULL DEFAULT 'GET',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
		usersDDL = `
		CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'user',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	} else {
		apisDDL = `
		CREATE TABLE IF NOT EXISTS apis (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			tech        TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			url         TEXT NOT NULL DEFAULT '',
			code        TEXT NOT NULL DEFAULT '',
			rating      INTEGER NOT NULL DEFAULT 0,
			endpoint    TEXT NOT NULL DEFAULT '',
			method      TEXT NOT NULL DEFAULT 'GET',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
		usersDDL = `
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'user',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	}

	if _, err := s.conn.Exec(apisDDL); err != nil {
		return fmt.Errorf("creating apis table: %w", err)
	}
	if _, err := s.conn.Exec(usersDDL); err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	return nil
}

// rebind converts ? placeholders to $1..$N when talking to Postgres.
// SQLite queries pass through untouched.
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// either backend. Postgres signals it with SQLSTATE 23505; modernc sqlite
// only exposes the constraint name in the error text.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
