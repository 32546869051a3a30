package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"matrix-render/internal/logger"
)

// Config is the persisted config file schema.
type Config struct {
	LogPath     string `toml:"log_path"`
	LogLevel    string `toml:"log_level"`
	Color       bool   `toml:"color"`
	Align       bool   `toml:"align"`
	PrefixWidth int    `toml:"prefix_width"`
	Filter      string `toml:"filter"`
	Source      string `toml:"-"`
}

// DefaultPrefixWidth is the sender column width used in align mode.
const DefaultPrefixWidth = 16

func Default() Config {
	return Config{
		LogPath:     logger.DefaultLogPath,
		LogLevel:    "info",
		PrefixWidth: DefaultPrefixWidth,
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".matrix-render", "config.toml")
}

// Load reads the config file at path (DefaultPath when empty) and applies
// MATRIX_RENDER_* environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return cfg, err
		}
	}
	return ApplyEnv(cfg)
}
