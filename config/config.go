// Package config loads sopflow's editor settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds sopflow configuration.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Export  ExportConfig  `toml:"export"`
	Storage StorageConfig `toml:"storage"`
}

// CanvasConfig controls the raster canvas.
type CanvasConfig struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	FontSize float64 `toml:"font_size"`
}

// ExportConfig controls image export.
type ExportConfig struct {
	Dir string `toml:"dir"` // empty means current directory
}

// StorageConfig controls the local workflow database.
type StorageConfig struct {
	Path string `toml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: 1200, Height: 800, FontSize: 13},
		Export: ExportConfig{Dir: "."},
		Storage: StorageConfig{
			Path: filepath.Join(configDir(), "workflows.db"),
		},
	}
}

// Load reads the config file, falling back to defaults when it does not
// exist. A malformed file is an error rather than a silent fallback.
func Load() (*Config, error) {
	cfg := Default()
	path := Path()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "sopflow")
	}
	return ".sopflow"
}
