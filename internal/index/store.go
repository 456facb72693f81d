package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IndexFileName is the name of the persisted index file inside the
// data directory.
const IndexFileName = "rag_index.json"

// Store owns the on-disk representation of one index: a single JSON
// document inside a data directory. Save replaces the whole document;
// callers load, mutate in memory, and save back.
type Store struct {
	dataDir string
}

// NewStore creates a store rooted at the given data directory
func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// Path returns the location of the index file
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, IndexFileName)
}

// DataDir returns the storage directory
func (s *Store) DataDir() string {
	return s.dataDir
}

// Load reads the persisted index. A missing file yields an empty index;
// an unreadable or malformed file is an error, never coerced to empty,
// since the next Save would then silently destroy the previous data.
func (s *Store) Load() (*Index, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read index file %s: %w", s.Path(), err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("index file %s is corrupt: %w", s.Path(), err)
	}

	if err := idx.Validate(); err != nil {
		return nil, fmt.Errorf("index file %s is inconsistent: %w", s.Path(), err)
	}

	return &idx, nil
}

// Save writes the full index, creating the data directory if needed.
// The write goes through a temp file and os.Rename so a concurrent
// reader never observes a partially written index.
func (s *Store) Save(idx *Index) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, IndexFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace index file: %w", err)
	}

	return nil
}

// Clear removes the persisted index and its data directory. It is
// idempotent and reports whether anything was actually removed.
func (s *Store) Clear() (bool, error) {
	if _, err := os.Stat(s.dataDir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat data directory: %w", err)
	}

	if err := os.RemoveAll(s.dataDir); err != nil {
		return false, fmt.Errorf("failed to remove data directory: %w", err)
	}

	return true, nil
}
