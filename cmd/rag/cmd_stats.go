package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rawe/rag/internal/config"
	"github.com/rawe/rag/internal/index"
)

// handleStats implements the stats subcommand
func handleStats(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	var jsonOutput bool
	fs.BoolVar(&jsonOutput, "json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    rag stats [options]

DESCRIPTION:
    Show statistics about the persisted index.

OPTIONS:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	store := index.NewStore(cfg.Storage.DataDir)
	idx, err := store.Load()
	if err != nil {
		log.Fatalf("Failed to load index: %v", err)
	}

	var fileSize int64
	if info, err := os.Stat(store.Path()); err == nil {
		fileSize = info.Size()
	}

	if jsonOutput {
		stats := map[string]interface{}{
			"records":    idx.Len(),
			"sources":    len(idx.Sources()),
			"dimension":  idx.Dimension(),
			"index_file": store.Path(),
			"file_bytes": fileSize,
		}
		jsonData, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("Index Statistics")
	fmt.Println()
	fmt.Printf("Records:    %6d\n", idx.Len())
	fmt.Printf("Sources:    %6d\n", len(idx.Sources()))
	fmt.Printf("Dimension:  %6d\n", idx.Dimension())
	fmt.Printf("Index file: %s (%d bytes)\n", store.Path(), fileSize)

	for _, source := range idx.Sources() {
		count := 0
		for _, rec := range idx.Documents {
			if rec.Source == source {
				count++
			}
		}
		fmt.Printf("  %s: %d chunks\n", source, count)
	}
}
