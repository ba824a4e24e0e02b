// Package config loads and validates the viewer configuration from
// .knav.yml, overlaid with KNAV_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (KNAV_*). A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: KNAV_PORT -> port, KNAV_CONTENT_DIR
	// -> content_dir. Double underscores address nested keys, so
	// KNAV_CLEANUP__NORMALIZE_WHITESPACE -> cleanup.normalize_whitespace.
	if err := k.Load(env.Provider("KNAV_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "KNAV_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validThemes is the set of recognized theme values.
var validThemes = map[Theme]bool{
	ThemeLight: true,
	ThemeDark:  true,
	ThemeAuto:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}

	if c.ManifestPath == "" {
		return fmt.Errorf("manifest is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}

	if c.Theme != "" && !validThemes[c.Theme] {
		return fmt.Errorf("invalid theme %q: must be one of light, dark, auto", c.Theme)
	}

	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must be non-negative")
	}

	return nil
}

// ManifestFile resolves the manifest path. Relative paths are taken
// relative to the content directory.
func (c *Config) ManifestFile() string {
	if filepath.IsAbs(c.ManifestPath) {
		return c.ManifestPath
	}
	return filepath.Join(c.ContentDir, c.ManifestPath)
}

// StorePath is the location of the preferences database under the data
// directory.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "navigator.db")
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
