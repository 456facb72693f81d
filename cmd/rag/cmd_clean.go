package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rawe/rag/internal/config"
	"github.com/rawe/rag/internal/index"
)

// handleClean implements the clean subcommand
func handleClean(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    rag clean

DESCRIPTION:
    Delete the persisted index and its data directory.
    This is irrecoverable. Running clean when no index exists is not
    an error.

OPTIONS:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	store := index.NewStore(cfg.Storage.DataDir)

	removed, err := store.Clear()
	if err != nil {
		log.Fatalf("Clean failed: %v", err)
	}

	if removed {
		fmt.Printf("Removed index directory %s\n", store.DataDir())
	} else {
		fmt.Printf("Nothing to clean (%s does not exist)\n", store.DataDir())
	}
}
