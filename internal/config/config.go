// Package config loads mailcore configuration from a YAML file with
// environment-variable overrides. A .env file in the working directory is
// honored for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig selects and parameterizes the store backend.
type StorageConfig struct {
	// Backend is one of "file", "sqlite", "redis", or "memory".
	Backend string `yaml:"backend"`

	// DataDir holds the per-collection JSON files for the file backend.
	DataDir string `yaml:"data_dir"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `yaml:"redis_addr"`
}

// Load reads the YAML file at path, fills in defaults, and applies
// environment overrides. A missing file yields the pure-default config.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Set defaults
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaultDataDir()
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = cfg.Storage.DataDir + "/mailcore.db"
	}
	if cfg.Storage.RedisAddr == "" {
		cfg.Storage.RedisAddr = "localhost:6379"
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads .env if present, then the config file.
func LoadFromEnv(path string) (*Config, error) {
	// Best effort; a missing .env is fine.
	_ = godotenv.Load()
	return Load(path)
}

func applyEnv(cfg *Config) {
	if backend := os.Getenv("MAILCORE_STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dir := os.Getenv("MAILCORE_DATA_DIR"); dir != "" {
		cfg.Storage.DataDir = dir
	}
	if path := os.Getenv("MAILCORE_SQLITE_PATH"); path != "" {
		cfg.Storage.SQLitePath = path
	}
	if addr := os.Getenv("MAILCORE_REDIS_ADDR"); addr != "" {
		cfg.Storage.RedisAddr = addr
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "redis", "memory":
		return nil
	}
	return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.mailcore"
	}
	return ".mailcore"
}
