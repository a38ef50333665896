package store

import (
	"fmt"
	"strings"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/errors"
)

// Sentinel is the canonical placeholder stored in place of an empty cheatsheet.
// A session with no record is semantically equivalent to one holding Sentinel.
const Sentinel = "(empty)"

// Store is the keyed persistence layer for session cheatsheets.
//
// Get never creates a record; an unseen session reads as Sentinel.
//
// Set normalizes content (trim; empty becomes Sentinel) and upserts it with a
// fresh timestamp in a single statement. previous is the content the caller
// last observed (as returned by Get): when it equals the normalized content
// the call is a no-op, leaving both bytes and timestamp untouched. Get can
// never return "", so previous == "" forces an unconditional write.
//
// Concurrent writers are last-write-wins; lost updates are not detected.
type Store interface {
	Get(sessionID string) (string, error)
	Set(sessionID, content, previous string) error
	Close() error
}

// New creates a store for the given driver.
func New(driver, path string) (Store, error) {
	switch driver {
	case "memory", "":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(path)
	case "file":
		return NewFileStore(path)
	default:
		return nil, errors.New(errors.CodeConfigInvalid, fmt.Sprintf("unsupported store driver: %s", driver)).
			WithSuggestion("use sqlite, file, or memory")
	}
}

// Normalize trims content and substitutes Sentinel for empty input.
// Whitespace-only content is never persisted.
func Normalize(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Sentinel
	}
	return trimmed
}

// validateSession rejects empty session identifiers before any I/O.
func validateSession(sessionID string) error {
	if sessionID == "" {
		return errors.New(errors.CodeInvalidSession, "session_id is empty")
	}
	return nil
}

// unchanged reports whether the write should be skipped: the caller supplied
// the content it last observed and it matches the normalized candidate.
func unchanged(normalized, previous string) bool {
	return previous != "" && previous == normalized
}
