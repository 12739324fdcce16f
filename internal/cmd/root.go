// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mtreilly/arc-shelf/internal/config"
	"github.com/mtreilly/arc-shelf/internal/library"
)

// app carries what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE, after flags are parsed.
type app struct {
	cfg   *config.Config
	v     *viper.Viper
	store library.LibraryStore
	log   *slog.Logger

	configFile string
	envFile    string
}

// NewRootCmd creates the root command for arc-shelf.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "arc-shelf",
		Short: "Manage your personal book collection",
		Long: `Keep track of the books you own.

arc-shelf provides tools to:
- Add and remove books, keyed by ISBN
- List the shelf page by page
- Fuzzy search titles, authors and ISBNs
- Export to and import from CSV
- Browse everything from an interactive shell`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default "+config.DefaultPath()+")")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file with ARC_SHELF_* variables")
	pf.StringP("file", "f", "", "Library data file")
	pf.String("backend", "", "Storage backend: json, sqlite")
	pf.Float64("threshold", 0, "Fuzzy search similarity threshold (0-1]")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(newAddCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newDuplicatesCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newShellCmd(a))

	return root
}

var flagKeys = map[string]string{
	"file":      "data.file",
	"backend":   "storage.backend",
	"threshold": "search.threshold",
	"log-level": "log.level",
}

// configOptional marks commands that run before a config file exists.
const configOptional = "config-optional"

func (a *app) init(cmd *cobra.Command) error {
	opts := config.Options{ConfigFile: a.configFile, EnvFile: a.envFile}
	if _, ok := cmd.Annotations[configOptional]; ok && opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			opts.ConfigFile = ""
		}
	}
	cfg, v, err := config.Load(opts)
	if err != nil {
		return err
	}
	// Root flags only: duplicates has its own --threshold.
	for name, key := range flagKeys {
		if f := cmd.Root().PersistentFlags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	if cfg, err = config.Decode(v); err != nil {
		return err
	}

	a.cfg = cfg
	a.v = v
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	a.store = newStore(cfg, a.log)
	a.log.Debug("arc-shelf: configured", "config", cfg.File, "data", cfg.Data.File, "backend", cfg.Storage.Backend)
	return nil
}

func newStore(cfg *config.Config, log *slog.Logger) *library.Store {
	var snap library.Snapshot = library.JSONSnapshot{}
	if cfg.Storage.Backend == config.BackendSQLite {
		snap = library.SQLiteSnapshot{}
	}
	return library.NewStore(
		library.WithSnapshot(snap),
		library.WithSearchThreshold(cfg.Search.Threshold),
		library.WithLogger(log),
		library.WithPath(cfg.Data.File),
	)
}

// dataFile is the file every command reads and writes.
func (a *app) dataFile() string { return a.cfg.Data.File }

// open loads the data file. A missing file is an empty shelf when
// allowMissing is set, which lets the first add create it.
func (a *app) open(allowMissing bool) error {
	err := a.store.Load(a.dataFile())
	if allowMissing && errors.Is(err, library.ErrFileNotFound) {
		a.log.Info("library file not found, starting empty", "path", a.dataFile())
		return nil
	}
	return err
}

func (a *app) save() error {
	return a.store.Save(a.dataFile())
}
