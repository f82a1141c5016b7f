// Package config loads and validates the ctk configuration.
//
// DESIGN: Built-in defaults always apply; a user file at
// ~/.config/ctk/config.yaml overrides what it names, and a handful of
// CTK_* environment variables override both. A missing file is not an
// error: the proxy must work out of the box.
//
// FILES:
//   - config.go:     typed Config, Load/LoadFromBytes, env expansion,
//                    validation, default paths
//   - tree.go:       generic YAML tree access for config get/set
//   - defaults.yaml: embedded defaults, also written by config init
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultYAML []byte

// Config is the root configuration for the ctk proxy.
type Config struct {
	Version  int                        `yaml:"version"`
	Enabled  bool                       `yaml:"enabled"`  // master switch for output compaction
	Commands map[string]map[string]bool `yaml:"commands"` // per-category command toggles
	Display  DisplayConfig              `yaml:"display"`
	Metrics  MetricsConfig              `yaml:"metrics"`
	Filter   FilterConfig               `yaml:"filter"`
	Log      LogConfig                  `yaml:"log"`
}

// DisplayConfig controls how compacted output is presented.
type DisplayConfig struct {
	Color    string `yaml:"color"`     // auto, always, never
	Compact  bool   `yaml:"compact"`   // false keeps cleaned-but-uncompacted output
	MaxLines int    `yaml:"max_lines"` // default line cap for ctk read / ctk cat
}

// MetricsConfig controls savings tracking.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Database string `yaml:"database"` // empty means the default data-dir path
	Trace    bool   `yaml:"trace"`    // append per-execution JSONL telemetry
}

// FilterConfig tunes the similarity deduplicator.
type FilterConfig struct {
	DedupThreshold float64 `yaml:"dedup_threshold"`
	DedupMinLength int     `yaml:"dedup_min_length"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// expandEnvWithDefaults expands environment variables with support for
// default values. Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultValue := ""
		if len(parts) > 2 {
			defaultValue = parts[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// Load reads configuration from a YAML file, falling back to the default
// path when path is empty and to built-in defaults when the file does not
// exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadFromBytes(nil)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw YAML bytes layered over the
// built-in defaults. Supports ${VAR:-default} env var expansion, env
// overrides, and validation.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parse built-in defaults: %w", err)
	}

	defCmds := make(map[string]map[string]bool, len(cfg.Commands))
	for cat, toggles := range cfg.Commands {
		defCmds[cat] = toggles
	}

	expanded := expandEnvWithDefaults(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Unmarshaling replaces whole per-category toggle blocks; fold the
	// default toggles back in for keys the file left out.
	for cat, defToggles := range defCmds {
		toggles, ok := cfg.Commands[cat]
		if !ok {
			cfg.Commands[cat] = defToggles
			continue
		}
		for name, v := range defToggles {
			if _, set := toggles[name]; !set {
				toggles[name] = v
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config
// so wrappers can redirect paths or kill filtering without editing files.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("CTK_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if db := os.Getenv("CTK_DB_PATH"); db != "" {
		c.Metrics.Database = db
	}
	if os.Getenv("CTK_NO_FILTER") != "" {
		c.Enabled = false
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid display.color: %q (must be auto, always, or never)", c.Display.Color)
	}
	if c.Display.MaxLines < 0 {
		return fmt.Errorf("invalid display.max_lines: %d (must not be negative)", c.Display.MaxLines)
	}
	if c.Filter.DedupThreshold <= 0 || c.Filter.DedupThreshold > 1 {
		return fmt.Errorf("invalid filter.dedup_threshold: %v (must be in (0, 1])", c.Filter.DedupThreshold)
	}
	if c.Filter.DedupMinLength < 0 {
		return fmt.Errorf("invalid filter.dedup_min_length: %d (must not be negative)", c.Filter.DedupMinLength)
	}
	return nil
}

// IsCommandEnabled reports whether a proxied command is switched on.
// Categories and commands the config never mentions default to enabled.
func (c *Config) IsCommandEnabled(category, name string) bool {
	toggles, ok := c.Commands[category]
	if !ok {
		return true
	}
	if v, ok := toggles["enabled"]; ok && !v {
		return false
	}
	if v, ok := toggles[name]; ok && !v {
		return false
	}
	return true
}

// ===== PATHS =====

// Dir returns the configuration directory (~/.config/ctk).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "ctk")
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DataDir returns the data directory (~/.local/share/ctk).
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "ctk")
}

// DatabasePath returns the metrics database location, honoring the
// configured override.
func (c *Config) DatabasePath() string {
	if c.Metrics.Database != "" {
		return c.Metrics.Database
	}
	return filepath.Join(DataDir(), "metrics.db")
}

// TelemetryPath returns the JSONL execution-trace location.
func (c *Config) TelemetryPath() string {
	return filepath.Join(DataDir(), "executions.jsonl")
}

// WriteDefault writes the embedded default configuration to path,
// creating parent directories. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, defaultYAML, 0600)
}
