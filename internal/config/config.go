// Package config loads the focuswatch YAML configuration, merging the file
// over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the config file lives unless overridden.
const DefaultConfigPath = "~/.config/focuswatch/config.yaml"

// Config holds all focuswatch configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Daemon   DaemonConfig   `yaml:"daemon"`
	Tracking TrackingConfig `yaml:"tracking"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type StorageConfig struct {
	Path       string `yaml:"path"`
	SQLiteFile string `yaml:"sqlite_file"`
}

type DaemonConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TrackingConfig struct {
	IdleTimeoutMinutes int `yaml:"idle_timeout_minutes"`
	RetentionDays      int `yaml:"retention_days"`
	DailyGoalMinutes   int `yaml:"daily_goal_minutes"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:       "~/.config/focuswatch",
			SQLiteFile: "focuswatch.db",
		},
		Daemon: DaemonConfig{
			Host: "127.0.0.1",
			Port: 8790,
		},
		Tracking: TrackingConfig{
			IdleTimeoutMinutes: 2,
			RetentionDays:      30,
			DailyGoalMinutes:   360,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "focuswatch.log",
		},
	}
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// DatabasePath resolves the configured SQLite file to an absolute path.
func (c *Config) DatabasePath() (string, error) {
	dir, err := ExpandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}
