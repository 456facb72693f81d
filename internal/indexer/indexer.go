package indexer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rawe/rag/internal/chunker"
	"github.com/rawe/rag/internal/config"
	"github.com/rawe/rag/internal/embedding"
	"github.com/rawe/rag/internal/index"
)

// Indexer handles the complete indexing pipeline: resolve inputs,
// chunk, embed, append, persist.
type Indexer struct {
	cfg      *config.Config
	store    *index.Store
	embed    *embedding.Service
	progress ProgressReporter
}

// Result summarizes one indexing run
type Result struct {
	FilesMatched int // files matched by the path or pattern
	FilesIndexed int // files actually chunked and embedded
	ChunksAdded  int // records appended during this run
	TotalRecords int // records in the index after persisting
	Duration     time.Duration
}

// New creates an indexer over the given store and embedding service
func New(cfg *config.Config, store *index.Store, embed *embedding.Service) *Indexer {
	return &Indexer{
		cfg:      cfg,
		store:    store,
		embed:    embed,
		progress: NewIndexProgress(DefaultProgressEnabled()),
	}
}

// hasGlobMeta reports whether the pattern contains glob metacharacters
func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// ResolveInputs expands a file path or glob pattern into a sorted list
// of candidate paths. A glob matching nothing and a nonexistent plain
// path are both errors; the caller gets them before any embedding call
// is attempted.
func ResolveInputs(pattern string) ([]string, error) {
	if hasGlobMeta(pattern) {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files matched pattern: %s", pattern)
		}
		sort.Strings(matches)
		return matches, nil
	}

	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", pattern, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", abs)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("not a file: %s", abs)
	}
	return []string{abs}, nil
}

// IndexPattern indexes a file or glob of files: each file is chunked,
// embedded as one batch in passage mode, and appended to the in-memory
// index. The index is persisted exactly once, after all files, so a
// failure mid-run leaves the previous on-disk index untouched.
func (ix *Indexer) IndexPattern(ctx context.Context, pattern string) (*Result, error) {
	startTime := time.Now()

	files, err := ResolveInputs(pattern)
	if err != nil {
		return nil, err
	}

	idx, err := ix.store.Load()
	if err != nil {
		return nil, err
	}

	result := &Result{FilesMatched: len(files)}

	if ix.progress != nil {
		ix.progress.Start(len(files))
	}

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.IsDir() {
			log.Printf("Warning: skipping non-file: %s", path)
			if ix.progress != nil {
				ix.progress.Increment()
			}
			continue
		}

		added, err := ix.indexFile(ctx, path, idx)
		if err != nil {
			return nil, err
		}
		if added > 0 {
			result.FilesIndexed++
			result.ChunksAdded += added
		}
		if ix.progress != nil {
			ix.progress.Increment()
		}
	}

	if ix.progress != nil {
		ix.progress.Finish()
	}

	if err := ix.store.Save(idx); err != nil {
		return nil, err
	}

	result.TotalRecords = idx.Len()
	result.Duration = time.Since(startTime)
	return result, nil
}

// indexFile chunks and embeds one file, appending records to idx.
// Returns the number of chunks added.
func (ix *Indexer) indexFile(ctx context.Context, path string, idx *index.Index) (int, error) {
	source := filepath.Base(path)
	log.Printf("Reading %s", source)

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	chunks := chunker.Split(string(data), ix.cfg.Chunking.MaxChars)
	if len(chunks) == 0 {
		log.Printf("Warning: %s has no indexable content, skipping", source)
		return 0, nil
	}
	log.Printf("Split into %d chunks (up to %d chars each)", len(chunks), ix.cfg.Chunking.MaxChars)

	log.Printf("Embedding chunks")
	vectors, err := ix.embed.Embed(ctx, chunks, embedding.ModePassage)
	if err != nil {
		return 0, fmt.Errorf("failed to embed %s: %w", source, err)
	}

	records := make([]index.Record, len(chunks))
	for i, chunk := range chunks {
		records[i] = index.Record{
			Source:     source,
			ChunkIndex: i,
			Text:       chunk,
			Embedding:  vectors[i],
		}
	}

	if err := idx.Append(records...); err != nil {
		return 0, err
	}
	return len(records), nil
}
