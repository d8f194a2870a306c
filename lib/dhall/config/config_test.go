// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Cache.PoolSize != 4 {
		t.Errorf("expected pool_size=4, got %d", cfg.Cache.PoolSize)
	}
	if cfg.Cache.Compression != "zstd" {
		t.Errorf("expected compression=zstd, got %s", cfg.Cache.Compression)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log_level=info, got %s", cfg.LogLevel)
	}
	if cfg.Cache.Directory == "" {
		t.Error("expected a non-empty default cache directory")
	}
}

func TestLoadRequiresConfigEnvVar(t *testing.T) {
	orig := os.Getenv("DHALL_CBOR_CONFIG")
	defer os.Setenv("DHALL_CBOR_CONFIG", orig)
	os.Unsetenv("DHALL_CBOR_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when DHALL_CBOR_CONFIG not set, got nil")
	}

	want := "DHALL_CBOR_CONFIG environment variable not set"
	if got := err.Error(); len(got) < len(want) || got[:len(want)] != want {
		t.Errorf("expected error message to start with %q, got %q", want, got)
	}
}

func TestLoadWithConfigEnvVar(t *testing.T) {
	orig := os.Getenv("DHALL_CBOR_CONFIG")
	defer os.Setenv("DHALL_CBOR_CONFIG", orig)

	configPath := filepath.Join(t.TempDir(), "dhall-cbor.yaml")
	content := `
cache:
  directory: /test/cache
  pool_size: 2
  compression: lz4
log_level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	os.Setenv("DHALL_CBOR_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Directory != "/test/cache" {
		t.Errorf("Cache.Directory = %q, want /test/cache", cfg.Cache.Directory)
	}
	if cfg.Cache.PoolSize != 2 {
		t.Errorf("Cache.PoolSize = %d, want 2", cfg.Cache.PoolSize)
	}
	if cfg.Cache.Compression != "lz4" {
		t.Errorf("Cache.Compression = %q, want lz4", cfg.Cache.Compression)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadFileNonexistent(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadFile should fail for a nonexistent path")
	}
}

func TestLoadFilePartialOverridesKeepDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dhall-cbor.yaml")
	content := "log_level: warn\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Cache.PoolSize != 4 {
		t.Errorf("Cache.PoolSize = %d, want default 4 to survive a partial override", cfg.Cache.PoolSize)
	}
}

func TestLoadFileAcceptsJSONC(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dhall-cbor.jsonc")
	content := `{
  // overrides the default pool size
  "cache": {
    "directory": "/test/jsonc-cache",
    "pool_size": 8,
    "compression": "none",
  },
  "log_level": "debug",
}
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Cache.Directory != "/test/jsonc-cache" {
		t.Errorf("Cache.Directory = %q, want /test/jsonc-cache", cfg.Cache.Directory)
	}
	if cfg.Cache.PoolSize != 8 {
		t.Errorf("Cache.PoolSize = %d, want 8", cfg.Cache.PoolSize)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestValidateRejectsBadCompression(t *testing.T) {
	cfg := Default()
	cfg.Cache.Compression = "gzip"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject an unsupported compression tag")
	}
}

func TestValidateRejectsZeroPoolSize(t *testing.T) {
	cfg := Default()
	cfg.Cache.PoolSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a zero pool size")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Validate(Default()) = %v, want nil", err)
	}
}
