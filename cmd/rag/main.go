package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rawe/rag/cmd/rag/internal"
	"github.com/rawe/rag/internal/config"
)

func main() {
	// A .env file can carry RAG_EMBED_URL and RAG_DATA_DIR overrides
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		internal.PrintUsage()
		os.Exit(1)
	}

	// Parse global flags and find subcommand
	configPath := ""
	dataDir := ""
	args := os.Args[1:]

	// Handle special flags that don't require a subcommand
	for _, arg := range args {
		if arg == "-h" || arg == "-help" || arg == "--help" {
			internal.PrintUsage()
			os.Exit(0)
		}
		if arg == "-v" || arg == "-version" || arg == "--version" {
			fmt.Printf("rag version %s\n", internal.Version)
			os.Exit(0)
		}
	}

	validSubcommands := map[string]bool{
		"index":  true,
		"query":  true,
		"clean":  true,
		"stats":  true,
		"health": true,
	}

	subcommandIndex := -1
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") && validSubcommands[arg] {
			subcommandIndex = i
			break
		}
	}

	if subcommandIndex == -1 {
		fmt.Fprintf(os.Stderr, "Error: No subcommand specified\n\n")
		internal.PrintUsage()
		os.Exit(1)
	}

	// Parse global flags (before subcommand)
	globalFlags := args[:subcommandIndex]
	for i := 0; i < len(globalFlags); i++ {
		flag := globalFlags[i]
		switch {
		case flag == "-config" || flag == "--config":
			if i+1 < len(globalFlags) {
				configPath = globalFlags[i+1]
				i++
			}
		case flag == "-data" || flag == "--data":
			if i+1 < len(globalFlags) {
				dataDir = globalFlags[i+1]
				i++
			}
		case strings.HasPrefix(flag, "-"):
			fmt.Fprintf(os.Stderr, "Error: Unknown global flag: %s\n\n", flag)
			internal.PrintUsage()
			os.Exit(1)
		}
	}

	// Load configuration
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		if config.IsConfigNotFound(err) {
			if notFoundErr, ok := err.(*config.ConfigNotFoundError); ok {
				created, createErr := config.WriteDefaultTemplate(notFoundErr.RequestedPath)
				if createErr == nil && created {
					fmt.Fprintf(os.Stderr, "Created default config at %s\n", notFoundErr.RequestedPath)
					fmt.Fprintln(os.Stderr, "Review it and rerun the command.")
					os.Exit(1)
				}
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log.Fatalf("Failed to load config: %v", err)
	}

	// Override data dir if specified
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir, err = config.DefaultDataDir()
		if err != nil {
			log.Fatalf("Failed to determine data directory: %v", err)
		}
	}

	// Execute subcommand
	subcommand := args[subcommandIndex]
	subcommandArgs := args[subcommandIndex+1:]

	// query emits machine-readable output; keep its stderr clean of
	// log-file banners
	if subcommand != "query" {
		if err := internal.SetupLogging(subcommand); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize log file: %v\n", err)
		}
	}

	switch subcommand {
	case "index":
		handleIndex(cfg, subcommandArgs)
	case "query":
		handleQuery(cfg, subcommandArgs)
	case "clean":
		handleClean(cfg, subcommandArgs)
	case "stats":
		handleStats(cfg, subcommandArgs)
	case "health":
		handleHealth(cfg, subcommandArgs)
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", subcommand)
		internal.PrintUsage()
		os.Exit(1)
	}
}
