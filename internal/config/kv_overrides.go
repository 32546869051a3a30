package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides. Unknown keys and
// unparsable values are ignored.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		cfg = set(cfg, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
	return cfg
}

func set(cfg Config, key, val string) Config {
	switch key {
	case "log_path":
		cfg.LogPath = val
	case "log_level":
		cfg.LogLevel = val
	case "color":
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Color = b
		}
	case "align":
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Align = b
		}
	case "prefix_width":
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.PrefixWidth = n
		}
	case "filter":
		cfg.Filter = val
	}
	return cfg
}
