// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-shelf/internal/output"
)

func newListCmd(a *app) *cobra.Command {
	var out output.Options
	var page int
	var pageSize int
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the books on the shelf",
		Long: `List books in the order they were added, one page at a time.

Examples:
  arc-shelf list                  # First page
  arc-shelf list --page 3         # Third page
  arc-shelf list --page-size 20   # Bigger pages
  arc-shelf list --all -o json    # Everything, as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			if err := a.open(true); err != nil {
				return err
			}

			books := a.store.List()
			w := cmd.OutOrStdout()

			size := pageSize
			if size <= 0 {
				size = a.cfg.List.PageSize
			}
			if all {
				size = max(len(books), 1)
			}
			p := newPager(books, size)
			p.seek(page - 1)

			if out.Is(output.OutputJSON) {
				return output.JSON(w, p.current())
			}

			if len(books) == 0 {
				fmt.Fprintln(w, "No books found in library.")
				fmt.Fprintln(w, "Use 'arc-shelf add' or 'arc-shelf import <csv>' to add books.")
				return nil
			}

			if err := p.table().Render(w); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nTotal: %d book(s)\n", len(books))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to show (1-based)")
	cmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "Books per page (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "Show every book on one page")

	return cmd
}
