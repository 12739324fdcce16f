// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-shelf/internal/convert"
	"github.com/mtreilly/arc-shelf/internal/library"
	"github.com/mtreilly/arc-shelf/internal/output"
)

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool
	var force bool

	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Import books from a CSV file",
		Long: `Import books from a CSV file whose header names all book fields
(title, author, isbn, publisher, cover, category, edition, year, pages).

Books whose ISBN is already on the shelf are skipped. With --force the
shelf is replaced by the file's contents instead.

Examples:
  arc-shelf import data/library.csv
  arc-shelf import ~/Downloads/books.csv --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importPath := args[0]

			// Expand ~ to home directory
			if strings.HasPrefix(importPath, "~") {
				home, _ := os.UserHomeDir()
				importPath = filepath.Join(home, importPath[1:])
			}

			books, err := convert.ImportCSV(importPath)
			if err != nil {
				return err
			}
			if force {
				a.store = newStore(a.cfg, a.log)
			} else if err := a.open(true); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			imported := 0
			skipped := 0
			for _, b := range books {
				if err := a.store.Add(b); err != nil {
					if errors.Is(err, library.ErrDuplicateISBN) {
						a.log.Debug("import: skipping duplicate", "isbn", b.ISBN)
						skipped++
						continue
					}
					return err
				}
				fmt.Fprintf(out, "Imported: %s - %s\n", b.ISBN, output.Truncate(b.Title, 50))
				imported++
			}

			if (imported > 0 || force) && !dryRun {
				if err := a.save(); err != nil {
					return err
				}
			}

			verb := "Imported"
			if dryRun {
				verb = "Would import"
			}
			fmt.Fprintf(out, "\n%s %d book(s), skipped %d already in library.\n", verb, imported, skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace the shelf instead of merging")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be imported without saving")

	return cmd
}
