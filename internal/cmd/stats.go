// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-shelf/internal/library"
	"github.com/mtreilly/arc-shelf/internal/output"
)

type shelfStats struct {
	Books      int            `json:"books"`
	Authors    int            `json:"authors"`
	Pages      int            `json:"pages"`
	OldestYear int            `json:"oldest_year,omitempty"`
	NewestYear int            `json:"newest_year,omitempty"`
	ByCategory map[string]int `json:"by_category"`
	ByCover    map[string]int `json:"by_cover"`
}

func computeStats(books []library.Book) shelfStats {
	st := shelfStats{
		Books:      len(books),
		ByCategory: make(map[string]int),
		ByCover:    make(map[string]int),
	}
	authors := make(map[string]bool)
	for _, b := range books {
		st.Pages += b.Pages
		authors[library.Normalize(b.Author)] = true
		st.ByCategory[orUnset(b.Category)]++
		st.ByCover[orUnset(b.Cover)]++
		if b.Year > 0 {
			if st.OldestYear == 0 || b.Year < st.OldestYear {
				st.OldestYear = b.Year
			}
			if b.Year > st.NewestYear {
				st.NewestYear = b.Year
			}
		}
	}
	st.Authors = len(authors)
	return st
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func newStatsCmd(a *app) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show shelf statistics",
		Long:  `Display statistics about your shelf: book and page counts, categories, covers and years.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			if err := a.open(true); err != nil {
				return err
			}

			st := computeStats(a.store.List())
			w := cmd.OutOrStdout()

			if out.Is(output.OutputJSON) {
				return output.JSON(w, st)
			}

			fmt.Fprintf(w, "Library Statistics\n")
			fmt.Fprintf(w, "==================\n\n")
			fmt.Fprintf(w, "Books:         %d\n", st.Books)
			fmt.Fprintf(w, "Authors:       %d\n", st.Authors)
			fmt.Fprintf(w, "Pages:         %d\n", st.Pages)
			if st.NewestYear > 0 {
				fmt.Fprintf(w, "Years:         %d - %d\n", st.OldestYear, st.NewestYear)
			}
			printCounts(w, "By category:", st.ByCategory)
			printCounts(w, "By cover:", st.ByCover)
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	type kv struct {
		key string
		n   int
	}
	var rows []kv
	for k, n := range counts {
		rows = append(rows, kv{k, n})
	}
	// Most common first, then alphabetical.
	slices.SortFunc(rows, func(a, b kv) int {
		if c := cmp.Compare(b.n, a.n); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})

	fmt.Fprintln(w, title)
	for _, r := range rows {
		fmt.Fprintf(w, "  %s: %d\n", r.key, r.n)
	}
}
