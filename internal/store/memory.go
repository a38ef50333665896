package store

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory store used for tests and ephemeral deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryRecord
}

type memoryRecord struct {
	content   string
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryRecord),
	}
}

// Get returns the stored cheatsheet, or Sentinel when the session is unseen.
func (s *MemoryStore) Get(sessionID string) (string, error) {
	if err := validateSession(sessionID); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.sessions[sessionID]; ok {
		return rec.content, nil
	}
	return Sentinel, nil
}

// Set stores the normalized content with a fresh timestamp, skipping the
// write when previous matches.
func (s *MemoryStore) Set(sessionID, content, previous string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}

	normalized := Normalize(content)
	if unchanged(normalized, previous) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memoryRecord{content: normalized, updatedAt: time.Now()}
	return nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// UpdatedAt returns the last write time for a session, or the zero time.
func (s *MemoryStore) UpdatedAt(sessionID string) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID].updatedAt
}

// Close closes the store (no-op for memory).
func (s *MemoryStore) Close() error {
	return nil
}
