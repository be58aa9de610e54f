// duckstore_test.go - Tests for DuckDB-backed snapshot document storage
package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// createTestDuckStore creates a temporary DuckStore for testing
func createTestDuckStore(t *testing.T) *DuckStore {
	t.Helper()
	store, err := NewDuckStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create DuckStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDuckStore_RoundTrip(t *testing.T) {
	store := createTestDuckStore(t)

	if _, ok, err := store.Get("erd-visualizer-snapshots"); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}

	if err := store.Set("erd-visualizer-snapshots", `{"snapshots":[]}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := store.Get("erd-visualizer-snapshots")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got != `{"snapshots":[]}` {
		t.Errorf("value = %q", got)
	}
}

func TestDuckStore_Upsert(t *testing.T) {
	store := createTestDuckStore(t)

	if err := store.Set("key", "first"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("key", "second"); err != nil {
		t.Fatal(err)
	}

	got, _, err := store.Get("key")
	if err != nil {
		t.Fatal(err)
	}
	if got != "second" {
		t.Errorf("value = %q, want last write", got)
	}
}

func TestDuckStore_Delete(t *testing.T) {
	store := createTestDuckStore(t)

	if err := store.Set("key", "value"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get("key"); ok {
		t.Error("key survived deletion")
	}

	// Deleting an absent key is a no-op.
	if err := store.Delete("key"); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
}

func TestDuckStore_CreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDuckStore(dir)
	if err != nil {
		t.Fatalf("NewDuckStore: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(dir, "snapshots.duckdb")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}
