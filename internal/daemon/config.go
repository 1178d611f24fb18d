// Package daemon manages the lifegame daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Rollover  RolloverConfig  `toml:"rollover"`
	Sync      SyncConfig      `toml:"sync"`
	Server    ServerConfig    `toml:"server"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the local HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RolloverConfig controls the day-boundary check loop.
type RolloverConfig struct {
	CheckInterval string `toml:"check_interval"`
}

// SyncConfig controls the backup client.
type SyncConfig struct {
	ServerURL string `toml:"server_url"`
	Auto      bool   `toml:"auto"`
	Debounce  string `toml:"debounce"`
}

// ServerConfig controls the self-hosted sync server (lifegame server).
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// TelemetryConfig controls the Prometheus endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := lifegameHome()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 4729,
		},
		Rollover: RolloverConfig{
			CheckInterval: "60s",
		},
		Sync: SyncConfig{
			Auto:     true,
			Debounce: "5s",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "lifegame.log"),
		},
	}
}

// LoadConfig reads config from ~/.lifegame/config.toml, falling back to
// defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(lifegameHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.lifegame/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(lifegameHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// lifegameHome returns the lifegame data directory.
func lifegameHome() string {
	if env := os.Getenv("LIFEGAME_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lifegame")
}

// Home is exported for use by other packages.
func Home() string {
	return lifegameHome()
}

// parseDuration parses a duration string, returning a fallback on error.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
