// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-shelf/internal/library"
	"github.com/mtreilly/arc-shelf/internal/output"
)

type searchHit struct {
	library.Book
	Match string  `json:"match"`
	Score float64 `json:"score"`
}

func newSearchCmd(a *app) *cobra.Command {
	var out output.Options
	var limit int
	var scores bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search the shelf",
		Long: `Search titles and authors, tolerating typos, or look a book up by ISBN.

Exact and substring matches come first, then close matches by similarity.
An empty query lists everything.

Examples:
  arc-shelf search dune
  arc-shelf search "tolkein"          # finds Tolkien
  arc-shelf search 9780441013593      # ISBN lookup
  arc-shelf search herbert --scores   # show match quality`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			if err := a.open(true); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			matches := a.store.Rank(query)
			if limit > 0 && len(matches) > limit {
				matches = matches[:limit]
			}

			w := cmd.OutOrStdout()
			if out.Is(output.OutputJSON) {
				hits := make([]searchHit, len(matches))
				for i, m := range matches {
					hits[i] = searchHit{Book: m.Book, Match: m.Tier.String(), Score: m.Score}
				}
				return output.JSON(w, hits)
			}

			if len(matches) == 0 {
				fmt.Fprintln(w, "No books found.")
				return nil
			}

			t := summaryTable()
			if scores {
				t = output.NewTable("Title", "Author", "ISBN", "Match", "Score")
			}
			for _, m := range matches {
				row := []string{output.Truncate(m.Book.Title, 45), output.Truncate(m.Book.Author, 30), m.Book.ISBN}
				if scores {
					row = append(row, m.Tier.String(), fmt.Sprintf("%.2f", m.Score))
				}
				t.AddRow(row...)
			}
			return t.Render(w)
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of results (0 = all)")
	cmd.Flags().BoolVar(&scores, "scores", false, "Show match tier and similarity")

	return cmd
}
