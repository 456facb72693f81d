package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rawe/rag/internal/config"
	"github.com/rawe/rag/internal/embedding"
)

// handleHealth implements the health subcommand
func handleHealth(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	var jsonOutput bool
	fs.BoolVar(&jsonOutput, "json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    rag health [options]

DESCRIPTION:
    Check that the embedding service is reachable and report the
    model it is serving.

OPTIONS:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	client := embedding.NewHTTPClient(&cfg.Embedding)

	status, err := client.Health(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(status, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("Status: %s\n", status.Status)
	fmt.Printf("Model:  %s\n", status.Model)
	fmt.Printf("Device: %s\n", status.Device)
}
