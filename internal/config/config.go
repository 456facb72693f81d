package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rawe/rag/internal/chunker"
)

// Config holds the application configuration
type Config struct {
	Embedding EmbeddingConfig `yaml:"embedding"`
	Storage   StorageConfig   `yaml:"storage,omitempty"`
	Chunking  ChunkingConfig  `yaml:"chunking,omitempty"`
	Search    SearchConfig    `yaml:"search,omitempty"`
}

// EmbeddingConfig holds embedding service configuration
type EmbeddingConfig struct {
	// Base URL of the OpenAI-compatible embedding service
	BaseURL string `yaml:"base_url"`

	// Model name sent with each request; informational, the service
	// loads a single model at startup
	Model string `yaml:"model,omitempty"`

	// Request timeout in seconds
	TimeoutSecs int `yaml:"timeout_secs,omitempty"`
}

// StorageConfig holds index storage configuration
type StorageConfig struct {
	// Directory holding the persisted index
	// If empty, uses ~/.rag/data
	DataDir string `yaml:"data_dir,omitempty"`
}

// ChunkingConfig holds document chunking configuration
type ChunkingConfig struct {
	MaxChars int `yaml:"max_chars,omitempty"` // Maximum characters per chunk
}

// SearchConfig holds query-time defaults
type SearchConfig struct {
	DefaultTopK int `yaml:"default_top_k,omitempty"` // Default number of results
}

// Load loads configuration from the default config file.
// Default location: ~/.rag/config/rag.yaml
// A missing default config is not an error; built-in defaults apply.
func Load() (*Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := &Config{}
		cfg.applyDefaults()
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			defaultPath, _ := DefaultConfigPath()
			return nil, &ConfigNotFoundError{
				RequestedPath: path,
				DefaultPath:   defaultPath,
			}
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".rag", "config", "rag.yaml"), nil
}

// DefaultDataDir returns the default index storage directory
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".rag", "data"), nil
}

// ConfigNotFoundError is returned when an explicitly requested config
// file does not exist
type ConfigNotFoundError struct {
	RequestedPath string
	DefaultPath   string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found at: %s\n\nDefault location: %s\n\nYou can:\n"+
		"  1. Run without -config to use built-in defaults\n"+
		"  2. Create the config file at the default location\n"+
		"  3. Specify a different path with -config",
		e.RequestedPath, e.DefaultPath)
}

// IsConfigNotFound checks if error is config not found
func IsConfigNotFound(err error) bool {
	_, ok := err.(*ConfigNotFoundError)
	return ok
}

// expandPath expands ~ and $HOME to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "$HOME/") || path == "$HOME" {
		homeDir := os.Getenv("HOME")
		if homeDir == "" {
			var err error
			homeDir, err = os.UserHomeDir()
			if err != nil {
				return path
			}
		}
		if path == "$HOME" {
			return homeDir
		}
		return filepath.Join(homeDir, path[6:])
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return homeDir
		}
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Embedding.BaseURL == "" {
		c.Embedding.BaseURL = "http://localhost:8000"
	}
	if c.Embedding.TimeoutSecs == 0 {
		c.Embedding.TimeoutSecs = 30
	}
	if c.Storage.DataDir != "" {
		c.Storage.DataDir = expandPath(c.Storage.DataDir)
	}
	if c.Chunking.MaxChars == 0 {
		c.Chunking.MaxChars = chunker.DefaultMaxChars
	}
	if c.Search.DefaultTopK == 0 {
		c.Search.DefaultTopK = 3
	}
}

// applyEnvOverrides applies environment variable overrides, typically
// sourced from a .env file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RAG_EMBED_URL"); v != "" {
		c.Embedding.BaseURL = v
	}
	if v := os.Getenv("RAG_DATA_DIR"); v != "" {
		c.Storage.DataDir = expandPath(v)
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.Embedding.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("embedding base_url must be an absolute URL, got: %q", c.Embedding.BaseURL)
	}

	if c.Embedding.TimeoutSecs <= 0 {
		return fmt.Errorf("embedding timeout_secs must be positive, got: %d", c.Embedding.TimeoutSecs)
	}

	if c.Chunking.MaxChars <= 0 {
		return fmt.Errorf("chunking max_chars must be positive, got: %d", c.Chunking.MaxChars)
	}

	if c.Search.DefaultTopK <= 0 {
		return fmt.Errorf("search default_top_k must be positive, got: %d", c.Search.DefaultTopK)
	}

	return nil
}

const defaultConfigTemplate = `# rag configuration
#
# Copy and edit this file for your environment.
# Default location: $HOME/.rag/config/rag.yaml

embedding:
  # Base URL of the embedding service (OpenAI-compatible /v1/embeddings)
  base_url: http://localhost:8000

  # Request timeout in seconds
  timeout_secs: 30

storage:
  # Where the index is persisted (default: ~/.rag/data)
  # data_dir: ~/.rag/data

chunking:
  # Maximum characters per chunk
  max_chars: 1000

search:
  # Default number of query results
  default_top_k: 3
`

// WriteDefaultTemplate creates a default configuration file if it does not exist.
// It returns true if a file was created, false if it already existed.
func WriteDefaultTemplate(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
		return false, fmt.Errorf("failed to write config template: %w", err)
	}

	return true, nil
}
