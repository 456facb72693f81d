package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rawe/rag/internal/config"
	"github.com/rawe/rag/internal/embedding"
	"github.com/rawe/rag/internal/index"
	"github.com/rawe/rag/internal/indexer"
)

// handleIndex implements the index subcommand
func handleIndex(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    rag index <file-or-glob>

DESCRIPTION:
    Add a text file (or glob of files) to the index.
    Each file is split into chunks, the chunks are embedded by the
    embedding service, and the records are appended to the persisted
    index. The index is written once, after all files are processed.

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    # Index a single file
    rag index notes.txt

    # Index all matching files
    rag index 'docs/*.txt'

    # Index into a custom location
    rag -data ./rag_data index notes.txt
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: file path or glob pattern is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	pattern := fs.Arg(0)

	store := index.NewStore(cfg.Storage.DataDir)
	embedSvc := embedding.NewService(&cfg.Embedding)
	ix := indexer.New(cfg, store, embedSvc)

	result, err := ix.IndexPattern(context.Background(), pattern)
	if err != nil {
		log.Fatalf("Indexing failed: %v", err)
	}

	fmt.Printf("Indexed %d chunks from %d file(s) (%d total chunks in index)\n",
		result.ChunksAdded, result.FilesIndexed, result.TotalRecords)
	fmt.Printf("Duration: %v\n", result.Duration)
	fmt.Printf("Index: %s\n", store.Path())
}
