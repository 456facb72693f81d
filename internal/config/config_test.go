package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rag.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
embedding:
  base_url: http://embed.internal:9000
  timeout_secs: 10
chunking:
  max_chars: 500
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}

	if cfg.Embedding.BaseURL != "http://embed.internal:9000" {
		t.Errorf("BaseURL = %q", cfg.Embedding.BaseURL)
	}
	if cfg.Embedding.TimeoutSecs != 10 {
		t.Errorf("TimeoutSecs = %d, want 10", cfg.Embedding.TimeoutSecs)
	}
	if cfg.Chunking.MaxChars != 500 {
		t.Errorf("MaxChars = %d, want 500", cfg.Chunking.MaxChars)
	}

	// Unset fields get defaults
	if cfg.Search.DefaultTopK != 3 {
		t.Errorf("DefaultTopK = %d, want default 3", cfg.Search.DefaultTopK)
	}
}

func TestLoadFromFileDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "embedding: {}\n"))
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}

	if cfg.Embedding.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want default localhost", cfg.Embedding.BaseURL)
	}
	if cfg.Embedding.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", cfg.Embedding.TimeoutSecs)
	}
	if cfg.Chunking.MaxChars != 1000 {
		t.Errorf("MaxChars = %d, want 1000", cfg.Chunking.MaxChars)
	}
}

func TestLoadFromFileEnvOverrides(t *testing.T) {
	t.Setenv("RAG_EMBED_URL", "http://other:8000")
	t.Setenv("RAG_DATA_DIR", "/tmp/rag-test-data")

	cfg, err := LoadFromFile(writeConfig(t, "embedding:\n  base_url: http://from-file:8000\n"))
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}

	if cfg.Embedding.BaseURL != "http://other:8000" {
		t.Errorf("BaseURL = %q, env override must win", cfg.Embedding.BaseURL)
	}
	if cfg.Storage.DataDir != "/tmp/rag-test-data" {
		t.Errorf("DataDir = %q, want env override", cfg.Storage.DataDir)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !IsConfigNotFound(err) {
		t.Errorf("expected ConfigNotFoundError, got %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"relative base url", "embedding:\n  base_url: localhost:8000\n"},
		{"negative timeout", "embedding:\n  timeout_secs: -1\n"},
		{"negative chunk size", "chunking:\n  max_chars: -5\n"},
		{"malformed yaml", "embedding: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromFile(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestWriteDefaultTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "rag.yaml")

	created, err := WriteDefaultTemplate(path)
	if err != nil {
		t.Fatalf("WriteDefaultTemplate() error: %v", err)
	}
	if !created {
		t.Error("WriteDefaultTemplate() = false, want true on first write")
	}

	// Template must load cleanly
	if _, err := LoadFromFile(path); err != nil {
		t.Errorf("default template does not load: %v", err)
	}

	created, err = WriteDefaultTemplate(path)
	if err != nil {
		t.Fatalf("second WriteDefaultTemplate() error: %v", err)
	}
	if created {
		t.Error("WriteDefaultTemplate() = true, want false when file exists")
	}
}
