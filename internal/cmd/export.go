// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-shelf/internal/convert"
	"github.com/mtreilly/arc-shelf/internal/library"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string // "csv", "json", "markdown"
		dest   string // file path or "-" for stdout
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the shelf to CSV, JSON or Markdown",
		Long: `Export every book, in shelf order.

CSV goes next to the data file by default (library.json -> library.csv).
An existing file is only replaced with --force.

Examples:
  arc-shelf export                          # data/library.csv
  arc-shelf export -o ~/books.csv --force
  arc-shelf export --format markdown -o -   # print to stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(false); err != nil {
				return err
			}
			books := a.store.List()
			if len(books) == 0 {
				return fmt.Errorf("export: %w", convert.ErrEmptyCollection)
			}

			if dest == "" {
				if format != "csv" {
					dest = "-"
				} else {
					dest = convert.CSVPath(a.dataFile())
				}
			}

			var data []byte
			var err error
			switch format {
			case "csv":
				if dest != "-" {
					if err := convert.ExportCSV(books, dest, force); err != nil {
						return exportError(err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "File %s exported to %s.\n", a.dataFile(), dest)
					return nil
				}
				var buf bytes.Buffer
				err = convert.WriteCSV(&buf, books)
				data = buf.Bytes()
			case "json":
				data, err = library.EncodeJSON(books)
			case "markdown":
				data = exportMarkdown(books)
			default:
				return fmt.Errorf("unsupported format: %s (choose csv, json, markdown)", format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}

			if dest == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return exportError(fmt.Errorf("%s: %w", dest, convert.ErrTargetExists))
				}
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "File %s exported to %s.\n", a.dataFile(), dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv, json, markdown")
	cmd.Flags().StringVarP(&dest, "output", "o", "", "Output file, - for stdout (default: data file with .csv)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")

	return cmd
}

func exportError(err error) error {
	if errors.Is(err, convert.ErrTargetExists) {
		return fmt.Errorf("%w (use --force to overwrite)", err)
	}
	return err
}

// exportMarkdown renders the shelf as a reading list.
func exportMarkdown(books []library.Book) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Library Export\n\n")
	buf.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC3339)))
	buf.WriteString(fmt.Sprintf("Total books: %d\n\n---\n\n", len(books)))

	for _, b := range books {
		buf.WriteString(fmt.Sprintf("## %s\n\n", b.Title))
		buf.WriteString("**Author:** " + b.Author + "\n\n")
		buf.WriteString("**ISBN:** " + b.ISBN + "\n\n")

		var details []string
		if b.Publisher != "" {
			details = append(details, b.Publisher)
		}
		if b.Year > 0 {
			details = append(details, fmt.Sprint(b.Year))
		}
		if b.Edition > 0 {
			details = append(details, ordinal(b.Edition)+" edition")
		}
		if len(details) > 0 {
			buf.WriteString("**Published:** " + strings.Join(details, ", ") + "\n\n")
		}
		if b.Category != "" {
			buf.WriteString("**Category:** " + b.Category + "\n\n")
		}
		if b.Cover != "" || b.Pages > 0 {
			buf.WriteString(fmt.Sprintf("**Format:** %s, %d pages\n\n", b.Cover, b.Pages))
		}
		buf.WriteString("---\n\n")
	}

	return buf.Bytes()
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
