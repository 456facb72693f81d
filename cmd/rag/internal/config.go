package internal

import (
	"github.com/rawe/rag/internal/config"
)

// LoadConfig reads the YAML configuration. An explicit path must
// exist; the default path falls back to built-in defaults.
func LoadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}
