// Package storage persists completed-level records.
// SQLite (pure-Go modernc.org/sqlite, no CGO) is the default backend;
// a postgres:// DSN selects PostgreSQL through lib/pq.
package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dialect captures the SQL differences between the backends.
type dialect struct {
	name      string
	schema    string
	numbered  bool // $1 placeholders instead of ?
	returning bool // INSERT ... RETURNING id instead of LastInsertId
}

// Store manages the database connection for completion records.
// It is safe for concurrent use by multiple sessions.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open opens the records database described by dsn.
// A DSN starting with postgres:// or postgresql:// connects to PostgreSQL;
// anything else is a SQLite file path (a leading ~ is expanded).
func Open(dsn string) (*Store, error) {
	if IsPostgresDSN(dsn) {
		return openPostgres(dsn)
	}
	return openSQLite(dsn)
}

// IsPostgresDSN reports whether dsn selects the PostgreSQL backend.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// newStore pings db and runs migrations.
func newStore(db *sql.DB, d dialect) (*Store, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to %s database: %w", d.name, err)
	}

	store := &Store{db: db, dialect: d}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	_, err := s.db.Exec(s.dialect.schema)
	return err
}

// Backend returns "sqlite" or "postgres".
func (s *Store) Backend() string {
	return s.dialect.name
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// q rewrites a query written with ? placeholders for the backend.
func (s *Store) q(query string) string {
	if !s.dialect.numbered {
		return query
	}
	return rebind(query)
}

// rebind converts ? placeholders to $1, $2, ...
func rebind(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}
