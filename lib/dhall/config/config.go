// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config is the configuration for the dhall-cbor CLI and its cache.
type Config struct {
	// Cache configures the local content-addressed cache.
	Cache CacheConfig `yaml:"cache" json:"cache"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// CacheConfig configures lib/dhall/cache.
type CacheConfig struct {
	// Directory holds the cache's SQLite database file.
	Directory string `yaml:"directory" json:"directory"`

	// PoolSize is the number of pooled SQLite connections.
	PoolSize int `yaml:"pool_size" json:"pool_size"`

	// Compression is one of "none", "zstd", "lz4".
	Compression string `yaml:"compression" json:"compression"`
}

// Default returns a Config with development-friendly defaults.
//
// These defaults exist to give every field a sensible zero value
// before a config file is loaded over them, not as a substitute for
// loading one.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Cache: CacheConfig{
			Directory:   filepath.Join(homeDir, ".cache", "dhall-cbor"),
			PoolSize:    4,
			Compression: "zstd",
		},
		LogLevel: "info",
	}
}

// Load loads configuration from the path named by the
// DHALL_CBOR_CONFIG environment variable.
//
// There is no fallback: if the variable is unset, this fails. Use
// LoadFile directly when a path is supplied some other way (e.g. a
// --config flag).
func Load() (*Config, error) {
	path := os.Getenv("DHALL_CBOR_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("DHALL_CBOR_CONFIG environment variable not set; " +
			"set it to the path of your dhall-cbor.yaml config file, or use --config")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, starting
// from [Default] and overlaying whatever fields the file sets.
//
// The format is chosen by extension: ".json"/".jsonc" is parsed as
// JSON with comments and trailing commas stripped first (via
// tidwall/jsonc, so operators can annotate a checked-in config the
// way they would a tsconfig.json); anything else is parsed as YAML.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Validate checks the configuration for obviously invalid values.
func (c *Config) Validate() error {
	if c.Cache.Directory == "" {
		return fmt.Errorf("cache.directory is required")
	}
	if c.Cache.PoolSize <= 0 {
		return fmt.Errorf("cache.pool_size must be positive, got %d", c.Cache.PoolSize)
	}
	switch c.Cache.Compression {
	case "none", "zstd", "lz4":
	default:
		return fmt.Errorf("cache.compression must be one of none/zstd/lz4, got %q", c.Cache.Compression)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug/info/warn/error, got %q", c.LogLevel)
	}
	return nil
}
