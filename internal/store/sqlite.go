package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/errors"
)

// SQLiteStore is the keyed multi-session store backed by a SQLite file.
// WAL mode is enabled so concurrent service instances can share the file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the stored cheatsheet for the session, or Sentinel when no
// record exists. It never creates a record.
func (s *SQLiteStore) Get(sessionID string) (string, error) {
	if err := validateSession(sessionID); err != nil {
		return "", err
	}

	var content string
	err := s.db.QueryRow(`SELECT content FROM sessions WHERE session_id = ?`, sessionID).Scan(&content)
	if err == sql.ErrNoRows {
		return Sentinel, nil
	}
	if err != nil {
		return "", errors.Wrap(errors.CodeStoreError, "read session", err)
	}
	return content, nil
}

// Set upserts the normalized content and timestamp in a single statement.
// When previous matches the normalized content the call is a no-op.
func (s *SQLiteStore) Set(sessionID, content, previous string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}

	normalized := Normalize(content)
	if unchanged(normalized, previous) {
		return nil
	}

	_, err := s.db.Exec(`
		INSERT INTO sessions (session_id, content, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(session_id) DO UPDATE SET
			content = excluded.content,
			updated_at = CURRENT_TIMESTAMP
	`, sessionID, normalized)
	if err != nil {
		return errors.Wrap(errors.CodeStoreError, "upsert session", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
