// Package cli wires the bank demo together: configuration, engine
// construction, and the middleware stack around the event log.
package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the demo settings, read from an optional YAML file.
type Config struct {
	// LogFile is the path of the append-only event log.
	LogFile string `yaml:"log_file"`

	// Listen is the address for the serve command.
	Listen string `yaml:"listen"`

	// EncryptionKey is an optional base64-encoded 32-byte key. When set,
	// log lines are encrypted at rest.
	EncryptionKey string `yaml:"encryption_key"`

	// Redis, when configured, replaces the file log entirely.
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig selects a Redis-backed event log.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		LogFile: "data/bank-events.log",
		Listen:  ":8080",
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults unchanged; a missing file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
