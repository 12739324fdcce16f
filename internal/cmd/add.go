// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-shelf/internal/library"
)

func newAddCmd(a *app) *cobra.Command {
	var b library.Book

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the shelf",
		Long: `Add one book. The ISBN must not already be on the shelf.

Examples:
  arc-shelf add --title "Dune" --author "Frank Herbert" --isbn 9780441013593
  arc-shelf add --title "1984" --author "George Orwell" --isbn 9780451524935 \
      --publisher Signet --cover paperback --category fiction --year 1949 --pages 328`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCounts(b); err != nil {
				return err
			}
			if err := a.open(true); err != nil {
				return err
			}
			if err := a.store.Add(b); err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (ISBN %s). %d book(s) on the shelf.\n", b.Title, b.ISBN, a.store.Len())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&b.Title, "title", "", "Title (required)")
	f.StringVar(&b.Author, "author", "", "Author (required)")
	f.StringVar(&b.ISBN, "isbn", "", "ISBN (required, unique)")
	f.StringVar(&b.Publisher, "publisher", "", "Publisher")
	f.StringVar(&b.Cover, "cover", "", "Cover type (hardcover, paperback, ...)")
	f.StringVar(&b.Category, "category", "", "Category or genre")
	f.IntVar(&b.Edition, "edition", 0, "Edition number")
	f.IntVar(&b.Year, "year", 0, "Publication year")
	f.IntVar(&b.Pages, "pages", 0, "Page count")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("author")
	cmd.MarkFlagRequired("isbn")

	return cmd
}

func validateCounts(b library.Book) error {
	counts := []struct {
		name string
		n    int
	}{
		{"edition", b.Edition},
		{"year", b.Year},
		{"pages", b.Pages},
	}
	for _, c := range counts {
		if c.n < 0 {
			return fmt.Errorf("--%s must not be negative", c.name)
		}
	}
	return nil
}
