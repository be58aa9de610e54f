// Package storage provides the key-value persistence collaborator backing
// snapshot documents. Every write is last-writer-wins at storage-key
// granularity; there is no transaction or revision mechanism, which is an
// accepted limitation for concurrent writers sharing one key.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrQuotaExceeded is returned by Set when a document exceeds the backend's
// size limit. Callers surface it as a "delete or export snapshots" toast.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// DefaultMaxDocumentBytes bounds a single stored document (5 MB), roughly
// what browser localStorage allows per origin.
const DefaultMaxDocumentBytes = 5 * 1024 * 1024

// Store is the key-value contract the snapshot manager persists through.
// Absence is reported through the ok flag, not an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStore is a map-backed Store used in tests and as a non-durable
// fallback backend.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]string
	maxBytes int
}

// NewMemoryStore creates an in-memory store with the default quota.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string]string),
		maxBytes: DefaultMaxDocumentBytes,
	}
}

// Get returns the value for key, if present.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores the value under key.
func (s *MemoryStore) Set(key, value string) error {
	if len(value) > s.maxBytes {
		return ErrQuotaExceeded
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes the key; absent keys are a no-op.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// FileStore persists each key as one JSON document file under a data
// directory. Writes go through a temp file plus rename so a crashed write
// never leaves a truncated document behind.
type FileStore struct {
	mu       sync.Mutex
	dir      string
	maxBytes int
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	return NewFileStoreWithQuota(dir, DefaultMaxDocumentBytes)
}

// NewFileStoreWithQuota creates a file-backed store with a specific document
// size limit.
func NewFileStoreWithQuota(dir string, maxBytes int) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: maxBytes}, nil
}

// Get reads the document for key, if one exists.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading document %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes the document for key atomically.
func (s *FileStore) Set(key, value string) error {
	if len(value) > s.maxBytes {
		return ErrQuotaExceeded
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("writing document %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("committing document %q: %w", key, err)
	}
	return nil
}

// Delete removes the document for key; absent documents are a no-op.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting document %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}

// sanitizeKey keeps storage keys filesystem-safe.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
}

// Compile-time interface checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)
