// Package config resolves runtime settings from defaults, an optional YAML
// file and GANTT_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything a session needs to start.
type Config struct {
	DBPath    string
	Owner     string
	LogCalls  bool
	DayWidth  int
	RowHeight int
	PageSize  int // rows per rendered page
	Debounce  time.Duration
}

// fileConfig is the on-disk shape of config.yaml.
type fileConfig struct {
	DBPath     string `yaml:"db"`
	Owner      string `yaml:"owner"`
	LogCalls   bool   `yaml:"log_calls"`
	DayWidth   int    `yaml:"day_width"`
	RowHeight  int    `yaml:"row_height"`
	PageSize   int    `yaml:"page_rows"`
	DebounceMs int    `yaml:"debounce_ms"`
}

// DefaultConfig returns the built-in settings. DBPath is empty until
// resolved against the home directory.
func DefaultConfig() Config {
	return Config{
		DayWidth:  40,
		RowHeight: 48,
		PageSize:  25,
		Debounce:  150 * time.Millisecond,
	}
}

// DefaultDir is ~/.gantt.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".gantt"), nil
}

// Load builds the effective configuration. A missing config file is not an
// error; a malformed one is.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("GANTT_CONFIG")
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}

	cfg.applyEnv()

	if cfg.DBPath == "" {
		dir, err := DefaultDir()
		if err != nil {
			return cfg, err
		}
		cfg.DBPath = filepath.Join(dir, "gantt.db")
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if file.DBPath != "" {
		c.DBPath = file.DBPath
	}
	if file.Owner != "" {
		c.Owner = file.Owner
	}
	if file.LogCalls {
		c.LogCalls = true
	}
	if file.DayWidth > 0 {
		c.DayWidth = file.DayWidth
	}
	if file.RowHeight > 0 {
		c.RowHeight = file.RowHeight
	}
	if file.PageSize > 0 {
		c.PageSize = file.PageSize
	}
	if file.DebounceMs > 0 {
		c.Debounce = time.Duration(file.DebounceMs) * time.Millisecond
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GANTT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("GANTT_OWNER"); v != "" {
		c.Owner = v
	}
	if v := os.Getenv("GANTT_LOG_CALLS"); v != "" {
		c.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GANTT_DAY_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.DayWidth = n
		}
	}
	if v := os.Getenv("GANTT_ROW_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RowHeight = n
		}
	}
	if v := os.Getenv("GANTT_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Debounce = time.Duration(n) * time.Millisecond
		}
	}
}
