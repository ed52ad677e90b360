// Package config loads linestore settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"linestore/internal/lineio"
	"linestore/pkg/lines"
)

// Config holds user settings. Zero values fall back to DefaultConfig.
type Config struct {
	AtomicSave      bool   `yaml:"atomic_save"`      // write via temp file + rename
	InitialCapacity int    `yaml:"initial_capacity"` // line slots allocated on first insert
	MaxLines        int    `yaml:"max_lines"`        // 0 = unlimited
	MaxLineBytes    int    `yaml:"max_line_bytes"`   // longest line accepted on load
	Log             bool   `yaml:"log"`
	LogFile         string `yaml:"log_file"`
}

// DefaultDir returns the default settings directory (~/.config/linestore).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "linestore")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		AtomicSave:      false,
		InitialCapacity: lines.DefaultInitialCapacity,
		MaxLines:        0,
		MaxLineBytes:    lineio.DefaultMaxLineBytes,
	}
}

// Load reads the YAML file at path on top of DefaultConfig and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides logging from LINESTORE_LOG and LINESTORE_LOG_FILE.
// Setting a log file enables logging.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("LINESTORE_LOG"); v != "" {
		enabled, err := strconv.ParseBool(v)
		c.Log = err != nil || enabled
	}
	if lf := getenv("LINESTORE_LOG_FILE"); lf != "" {
		c.LogFile = lf
		c.Log = true
	}
}

// Validate rejects negative limits and fills zero ones with defaults.
func (c *Config) Validate() error {
	if c.InitialCapacity < 0 {
		return fmt.Errorf("initial_capacity must not be negative, got %d", c.InitialCapacity)
	}
	if c.MaxLines < 0 {
		return fmt.Errorf("max_lines must not be negative, got %d", c.MaxLines)
	}
	if c.MaxLineBytes < 0 {
		return fmt.Errorf("max_line_bytes must not be negative, got %d", c.MaxLineBytes)
	}
	if c.InitialCapacity == 0 {
		c.InitialCapacity = lines.DefaultInitialCapacity
	}
	if c.MaxLineBytes == 0 {
		c.MaxLineBytes = lineio.DefaultMaxLineBytes
	}
	return nil
}

// StoreOptions returns the line store options derived from c.
func (c *Config) StoreOptions() lines.Options {
	return lines.Options{InitialCapacity: c.InitialCapacity, MaxLines: c.MaxLines}
}

// LogPath returns the log destination, or "" when logging is disabled.
// Logging enabled without a file writes to linestore.log in DefaultDir.
func (c *Config) LogPath() string {
	if !c.Log {
		return ""
	}
	if c.LogFile == "" {
		return filepath.Join(DefaultDir(), "linestore.log")
	}
	return c.LogFile
}
