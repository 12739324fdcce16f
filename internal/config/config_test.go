// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func noEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, _, err := Load(Options{ConfigFile: path, EnvFile: noEnv(t)})
	require.NoError(t, err)

	want := Default()
	want.File = path
	assert.Equal(t, &want, cfg)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
data:
  file: /srv/books.db
storage:
  backend: sqlite
search:
  threshold: 0.75
list:
  page_size: 10
log:
  level: debug
`)

	cfg, _, err := Load(Options{ConfigFile: path, EnvFile: noEnv(t)})
	require.NoError(t, err)
	assert.Equal(t, "/srv/books.db", cfg.Data.File)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 0.75, cfg.Search.Threshold)
	assert.Equal(t, 10, cfg.List.PageSize)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "search:\n  threshold: 0.75\n")
	t.Setenv("ARC_SHELF_SEARCH_THRESHOLD", "0.6")
	t.Setenv("ARC_SHELF_LIST_PAGE_SIZE", "3")

	cfg, _, err := Load(Options{ConfigFile: path, EnvFile: noEnv(t)})
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Search.Threshold)
	assert.Equal(t, 3, cfg.List.PageSize)
}

func TestLoadDotEnv(t *testing.T) {
	path := writeConfig(t, "")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ARC_SHELF_DATA_FILE=from-dotenv.json\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("ARC_SHELF_DATA_FILE") })

	cfg, _, err := Load(Options{ConfigFile: path, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.json", cfg.Data.File)
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	_, _, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"), EnvFile: noEnv(t)})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty data file":   func(c *Config) { c.Data.File = "" },
		"unknown backend":   func(c *Config) { c.Storage.Backend = "mongo" },
		"zero threshold":    func(c *Config) { c.Search.Threshold = 0 },
		"threshold above 1": func(c *Config) { c.Search.Threshold = 1.5 },
		"page size":         func(c *Config) { c.List.PageSize = 0 },
		"log level":         func(c *Config) { c.Log.Level = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false))
	require.NoError(t, WriteDefault(path, true))

	cfg, _, err := Load(Options{ConfigFile: path, EnvFile: noEnv(t)})
	require.NoError(t, err)
	assert.Equal(t, Default().List, cfg.List)
}
