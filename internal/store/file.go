package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/errors"
)

// FileStore is the single-session variant: one flat text file holds the
// cheatsheet regardless of the session key. The key is still validated so the
// two backends present the same contract. Suited to the original single-user
// deployment shape; sqlite is the keyed multi-session backend.
type FileStore struct {
	path string
}

// NewFileStore creates a file store writing to path. The parent directory is
// created eagerly; the file itself is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New(errors.CodeConfigInvalid, "file store requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Get returns the file contents, or Sentinel when the file does not exist.
func (s *FileStore) Get(sessionID string) (string, error) {
	if err := validateSession(sessionID); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Sentinel, nil
	}
	if err != nil {
		return "", errors.Wrap(errors.CodeStoreError, "read cheatsheet file", err)
	}
	return string(data), nil
}

// Set writes the normalized content atomically via a temp file and rename.
// When previous matches the normalized content the call is a no-op and the
// file's modification time is left untouched.
func (s *FileStore) Set(sessionID, content, previous string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}

	normalized := Normalize(content)
	if unchanged(normalized, previous) {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cheatsheet-*")
	if err != nil {
		return errors.Wrap(errors.CodeStoreError, "create temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(normalized); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(errors.CodeStoreError, "write cheatsheet file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(errors.CodeStoreError, "close temp file", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(errors.CodeStoreError, "replace cheatsheet file", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}
