package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. MATRIX_RENDER_ALIGN.
const EnvPrefix = "MATRIX_RENDER"

type envOverrides struct {
	LogPath     string `envconfig:"LOG_PATH"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	Color       string `envconfig:"COLOR"`
	Align       string `envconfig:"ALIGN"`
	PrefixWidth string `envconfig:"PREFIX_WIDTH"`
	Filter      string `envconfig:"FILTER"`
}

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnv applies MATRIX_RENDER_* variables on top of cfg. Only variables
// that are set take effect.
func ApplyEnv(cfg Config) (Config, error) {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return cfg, err
	}
	for key, val := range map[string]string{
		"log_path":     env.LogPath,
		"log_level":    env.LogLevel,
		"color":        env.Color,
		"align":        env.Align,
		"prefix_width": env.PrefixWidth,
		"filter":       env.Filter,
	} {
		if val != "" {
			cfg = set(cfg, key, val)
		}
	}
	return cfg, nil
}
