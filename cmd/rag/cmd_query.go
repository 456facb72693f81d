package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rawe/rag/internal/config"
	"github.com/rawe/rag/internal/embedding"
	"github.com/rawe/rag/internal/index"
	"github.com/rawe/rag/internal/retrieval"
)

// handleQuery implements the query subcommand
func handleQuery(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)

	var topK int
	var minScore float64
	var textOutput bool

	fs.IntVar(&topK, "k", cfg.Search.DefaultTopK, "Number of results to return")
	// Cosine similarity never goes below -1, so the default threshold
	// keeps every result
	fs.Float64Var(&minScore, "min-score", -1, "Minimum similarity score threshold (e.g. 0.75)")
	fs.BoolVar(&textOutput, "text", false, "Human-readable output instead of JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    rag query [options] "<text>"

DESCRIPTION:
    Rank the indexed chunks against a free-text query.
    Results are sorted by cosine similarity, filtered by -min-score,
    and truncated to the top -k. Output is JSON on stdout.

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    # Search indexed chunks
    rag query "how do I configure logging"

    # Get 10 results
    rag query "error handling" -k 10

    # Only confident matches
    rag query "error handling" -min-score 0.75

    # Human-readable output
    rag query "error handling" -text
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: query text is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	query := fs.Arg(0)

	store := index.NewStore(cfg.Storage.DataDir)
	embedSvc := embedding.NewService(&cfg.Embedding)
	searcher := retrieval.NewSearcher(store, embedSvc)

	fmt.Fprintf(os.Stderr, "Searching for: %s\n", query)

	resp, err := searcher.Search(context.Background(), query, retrieval.SearchOptions{
		TopK:     topK,
		MinScore: float32(minScore),
	})
	if err != nil {
		if errors.Is(err, retrieval.ErrEmptyIndex) {
			fmt.Fprintln(os.Stderr, "Error: index is empty. Run 'rag index <file>' first.")
			os.Exit(1)
		}
		log.Fatalf("Query failed: %v", err)
	}

	if textOutput {
		outputText(resp)
	} else {
		outputJSON(resp)
	}
}

// outputJSON prints the full response as indented JSON on stdout
func outputJSON(resp *retrieval.Response) {
	jsonData, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal results: %v", err)
	}
	fmt.Println(string(jsonData))
}

// outputText prints results as human-readable text
func outputText(resp *retrieval.Response) {
	if len(resp.Results) == 0 {
		fmt.Println("No results found")
		return
	}

	fmt.Printf("Found %d result(s) for: %s\n\n", len(resp.Results), resp.Query)

	for i, result := range resp.Results {
		fmt.Printf("%d. %s [chunk %d]\n", i+1, result.Source, result.ChunkIndex)
		fmt.Printf("   Score: %.4f\n", result.Score)

		text := result.Text
		if len(text) > 200 {
			text = text[:200] + "..."
		}
		fmt.Printf("   %s\n\n", text)
	}
}
