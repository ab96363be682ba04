// Package config handles configuration loading and validation for studydesk.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported snapshot storage backends.
const (
	StorageJSONFile = "jsonfile"
	StorageSQLite   = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Storage     string      `yaml:"storage"`      // snapshot backend: jsonfile or sqlite
	DisplayName string      `yaml:"display_name"` // author name for chat messages
	Seed        *bool       `yaml:"seed"`         // seed starter data on first run (default true)
	Room        RoomConfig  `yaml:"room"`
	Toast       ToastConfig `yaml:"toast"`
	DataDir     string      `yaml:"-"` // set by caller, not from config file
}

// RoomConfig holds room session tunables.
type RoomConfig struct {
	RunLatencyMS int `yaml:"run_latency_ms"`
}

// ToastConfig holds notification tunables.
type ToastConfig struct {
	DurationMS int `yaml:"duration_ms"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageJSONFile,
		Room: RoomConfig{
			RunLatencyMS: 500,
		},
		Toast: ToastConfig{
			DurationMS: 3000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage == "" {
		c.Storage = defaults.Storage
	}
	if c.Room.RunLatencyMS == 0 {
		c.Room.RunLatencyMS = defaults.Room.RunLatencyMS
	}
	if c.Toast.DurationMS == 0 {
		c.Toast.DurationMS = defaults.Toast.DurationMS
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage != StorageJSONFile && c.Storage != StorageSQLite {
		return fmt.Errorf("storage must be %q or %q, got %q", StorageJSONFile, StorageSQLite, c.Storage)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Room.RunLatencyMS < 0 {
		return fmt.Errorf("room.run_latency_ms cannot be negative")
	}

	if c.Toast.DurationMS < 0 {
		return fmt.Errorf("toast.duration_ms cannot be negative")
	}

	return nil
}

// SeedEnabled reports whether starter data should be written on first run.
func (c *Config) SeedEnabled() bool {
	return c.Seed == nil || *c.Seed
}

// RunLatency returns the simulated execution time for a room run.
func (c *Config) RunLatency() time.Duration {
	return time.Duration(c.Room.RunLatencyMS) * time.Millisecond
}

// ToastDuration returns the auto-dismiss delay for notifications.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.Toast.DurationMS) * time.Millisecond
}
