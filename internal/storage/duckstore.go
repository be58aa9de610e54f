package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/marcboeker/go-duckdb"
)

// DuckStore persists documents in an embedded DuckDB file. It is the
// durable backend: documents survive server restarts, unlike MemoryStore,
// and unlike FileStore it keeps everything in a single database file.
type DuckStore struct {
	mu       sync.Mutex
	db       *sql.DB
	dbPath   string
	maxBytes int
}

// NewDuckStore opens (or creates) the snapshot database in dataDir.
func NewDuckStore(dataDir string) (*DuckStore, error) {
	return NewDuckStoreAtPath(filepath.Join(dataDir, "snapshots.duckdb"))
}

// NewDuckStoreAtPath opens a document store at a specific database path.
func NewDuckStoreAtPath(dbPath string) (*DuckStore, error) {
	fmt.Printf("[DuckStore] Opening database at: %s\n", dbPath)

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='256MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				fmt.Printf("[DuckStore] Pragma warning: %v\n", err)
				// Non-fatal - continue even if pragma fails
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			key        VARCHAR PRIMARY KEY,
			value      VARCHAR NOT NULL,
			updated_at BIGINT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &DuckStore{
		db:       db,
		dbPath:   dbPath,
		maxBytes: DefaultMaxDocumentBytes,
	}, nil
}

// Get returns the document stored under key, if present.
func (s *DuckStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM documents WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying document %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the document under key.
func (s *DuckStore) Set(key, value string) error {
	if len(value) > s.maxBytes {
		return ErrQuotaExceeded
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("writing document %q: %w", key, err)
	}
	return nil
}

// Delete removes the document under key; absent keys are a no-op.
func (s *DuckStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM documents WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting document %q: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *DuckStore) Close() error {
	return s.db.Close()
}

var _ Store = (*DuckStore)(nil)
