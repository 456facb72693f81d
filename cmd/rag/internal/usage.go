package internal

import (
	"fmt"
	"os"
)

const Version = "0.3.1"

// PrintUsage writes the top-level usage text to stderr
func PrintUsage() {
	fmt.Fprintf(os.Stderr, `rag - Index text files and query them via semantic search

Version: %s

USAGE:
    rag [global options] <command> [command options]

GLOBAL OPTIONS:
    -config <path>
        Path to config file (default: ~/.rag/config/rag.yaml)

    -data <dir>
        Override the index data directory (default: ~/.rag/data)

    -v, -version
        Show version information

    -h, -help
        Show this help message

COMMANDS:
    index
        Add a text file or glob of files to the index

    query
        Rank indexed chunks against free text (JSON output)

    clean
        Delete the persisted index

    stats
        Show index statistics

    health
        Check the embedding service

EXAMPLES:
    # Index a file
    rag index notes.txt

    # Index all matching files
    rag index 'docs/*.txt'

    # Search, top 5 results
    rag query "how is logging configured" -k 5

    # Delete the index
    rag clean

For detailed help on each command, use:
    rag <command> -help
`, Version)
}
