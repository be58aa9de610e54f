package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_CreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Snapshots.MaxCount != 20 {
		t.Errorf("maxCount = %d", cfg.Snapshots.MaxCount)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("default config file was not written")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9000\nstorage:\n  backend: duckdb\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "duckdb" {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	// Unspecified values keep their defaults.
	if cfg.Snapshots.AutoSaveDelayMs != 2000 {
		t.Errorf("autoSaveDelayMs = %d", cfg.Snapshots.AutoSaveDelayMs)
	}
}

func TestLoadConfig_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("storage:\n  dataDirectory: ./state\nmetadata:\n  source: file\n  path: ./schema.yaml\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if want := filepath.Join(dir, "state"); cfg.Storage.DataDirectory != want {
		t.Errorf("dataDirectory = %q, want %q", cfg.Storage.DataDirectory, want)
	}
	if want := filepath.Join(dir, "schema.yaml"); cfg.Metadata.Path != want {
		t.Errorf("metadata path = %q, want %q", cfg.Metadata.Path, want)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	// Overrides only apply to a pre-existing file, so write one first.
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "7777")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("METADATA_FILE", "/schemas/prod.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Metadata.Source != "file" || cfg.Metadata.Path != "/schemas/prod.yaml" {
		t.Errorf("metadata = %+v", cfg.Metadata)
	}
}

func TestGetServerAddr(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetServerAddr(); got != "0.0.0.0:8090" {
		t.Errorf("addr = %q", got)
	}
}
