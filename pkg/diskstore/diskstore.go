// Package diskstore persists small payloads on disk, content-addressed by
// cache key.
//
// Each key maps to one file named by the hex SHA-256 of the key, so keys of
// any shape are safe to store and the layout needs no index: presence is
// inferred from the filesystem. Writes go to a temporary sibling file first
// and are renamed into place, so readers never observe a partial file.
//
// The store never evicts. Payloads here are small icons; callers that need a
// bound impose it externally.
package diskstore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Read when no payload exists for the key, or
// when the stored file is unreadable or empty. Callers treat all three the
// same way: a cache miss.
var ErrNotFound = errors.New("diskstore: entry not found")

// Store is a content-addressed file store rooted at a single directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("diskstore: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the deterministic file path for key.
func (s *Store) Path(key string) string {
	digest := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(digest[:])+".img")
}

// Write persists data for key atomically: the payload lands in a temporary
// sibling file which is then renamed over the target. On failure the
// temporary file is removed best-effort and the error is returned; callers
// treat the disk tier as an optimization and log rather than propagate.
func (s *Store) Write(key string, data []byte) error {
	path := s.Path(key)

	tmp, err := os.CreateTemp(s.dir, ".write-*")
	if err != nil {
		return fmt.Errorf("diskstore: create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("diskstore: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("diskstore: close temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("diskstore: rename: %w", err)
	}
	return nil
}

// Read returns the payload stored for key, or ErrNotFound when the file is
// absent, unreadable, or empty.
func (s *Store) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil || len(data) == 0 {
		return nil, ErrNotFound
	}
	return data, nil
}
