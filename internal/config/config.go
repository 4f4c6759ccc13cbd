// Package config loads termvim configuration: a TOML file for settings, an
// optional Lua rc script for options and key mappings, and a watcher for
// live reload.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Nvim  NvimConfig  `toml:"nvim"`
	Grid  GridConfig  `toml:"grid"`
	Log   LogConfig   `toml:"log"`
	Input InputConfig `toml:"input"`
	Event EventConfig `toml:"event"`
}

// NvimConfig describes the embedded Neovim child process.
type NvimConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// GridConfig sets the dimensions grids take before their first resize.
type GridConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// LogConfig controls log level and destination. The UI owns the tty, so
// logs go to a file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// InputConfig sizes the keystroke queue.
type InputConfig struct {
	QueueSize int `toml:"queue_size"`
}

// EventConfig sizes the screen-update handoff queue.
type EventConfig struct {
	QueueSize int `toml:"queue_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Nvim: NvimConfig{
			Command: "nvim",
			Args:    []string{"--embed", "--headless"},
		},
		Grid: GridConfig{
			Width:  80,
			Height: 25,
		},
		Log: LogConfig{
			Level: "info",
		},
		Input: InputConfig{QueueSize: 256},
		Event: EventConfig{QueueSize: 4096},
	}
}

// DefaultPath returns the conventional config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "termvim", "config.toml")
}

// Load reads a TOML file over the defaults. A missing file is not an
// error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
