package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yndnr/securetoken-go/internal/infra/confloader"
)

// DefaultConfigPath returns ~/.tokgen/config.yaml.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tokgen", "config.yaml")
}

// Load builds the effective configuration and validates it.
//
// An empty path uses DefaultConfigPath when that file exists. An explicit
// path must exist. overrides holds flag values keyed by dotted path.
func Load(path string, overrides map[string]any) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	loader := confloader.NewLoader(
		confloader.WithDefaults(defaultMap()),
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)

	cfg := &Config{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
