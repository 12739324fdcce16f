// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-shelf settings from defaults, a YAML file, a
// .env file, ARC_SHELF_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName   = "arc-shelf"
	envPrefix = "ARC_SHELF"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the resolved application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	List    ListConfig    `mapstructure:"list" yaml:"list"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-" yaml:"-"`
}

type DataConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // json or sqlite
}

type SearchConfig struct {
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
}

type ListConfig struct {
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Data:    DataConfig{File: filepath.Join("data", "library.json")},
		Storage: StorageConfig{Backend: BackendJSON},
		Search:  SearchConfig{Threshold: 0.5},
		List:    ListConfig{PageSize: 5},
		Log:     LogConfig{Level: "warn"},
	}
}

// Options control where Load looks.
type Options struct {
	ConfigFile string // explicit config file; must exist when set
	EnvFile    string // dotenv file; ignored when missing
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("."+appName, "config.yaml")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// Load resolves the configuration from everything but flags. Callers bind
// changed flags on the returned viper and call Decode again.
func Load(opts Options) (*Config, *viper.Viper, error) {
	if opts.EnvFile == "" {
		opts.EnvFile = ".env"
	}
	if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("load %s: %w", opts.EnvFile, err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigFile(DefaultPath())
		if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Decode builds and validates a Config from v's current values.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.File); err != nil {
		cfg.File = ""
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("data.file", d.Data.File)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("search.threshold", d.Search.Threshold)
	v.SetDefault("list.page_size", d.List.PageSize)
	v.SetDefault("log.level", d.Log.Level)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Data.File == "" {
		return errors.New("config: data.file must not be empty")
	}
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown storage.backend %q (choose json or sqlite)", c.Storage.Backend)
	}
	if c.Search.Threshold <= 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("config: search.threshold %.2f out of range (0, 1]", c.Search.Threshold)
	}
	if c.List.PageSize < 1 {
		return fmt.Errorf("config: list.page_size must be at least 1, got %d", c.List.PageSize)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := ParseLevel(c.Log.Level)
	return lvl
}

// ParseLevel maps debug/info/warn/error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: unknown log.level %q", s)
	}
	return lvl, nil
}

// YAML renders the configuration as it would be written to a file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the built-in settings to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	d := Default()
	data, err := d.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
