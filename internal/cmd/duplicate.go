// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-shelf/internal/library"
	"github.com/mtreilly/arc-shelf/internal/output"
)

type duplicatePair struct {
	A      library.Book `json:"a"`
	B      library.Book `json:"b"`
	Score  float64      `json:"score"`
	Reason string       `json:"reason"`
}

// findDuplicates compares every pair of books. Repeated ISBNs (possible in
// hand-edited files) score 1; otherwise the better of word overlap and
// normalized title similarity decides.
func findDuplicates(books []library.Book, threshold float64) []duplicatePair {
	var pairs []duplicatePair

	// O(n^2), fine for a personal shelf
	for i := 0; i < len(books); i++ {
		for j := i + 1; j < len(books); j++ {
			b1, b2 := books[i], books[j]

			if b1.ISBN == b2.ISBN {
				pairs = append(pairs, duplicatePair{A: b1, B: b2, Score: 1.0, Reason: "same ISBN"})
				continue
			}

			overlap := library.WordOverlap(b1.Title, b2.Title)
			sim := library.Similarity(library.Normalize(b1.Title), library.Normalize(b2.Title))
			score, reason := overlap, fmt.Sprintf("title overlap %.2f", overlap)
			if sim > score {
				score, reason = sim, fmt.Sprintf("title similarity %.2f", sim)
			}
			if score < threshold {
				continue
			}
			if library.Normalize(b1.Author) == library.Normalize(b2.Author) && b1.Author != "" {
				reason += ", same author"
			}
			pairs = append(pairs, duplicatePair{A: b1, B: b2, Score: score, Reason: reason})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})
	return pairs
}

func newDuplicatesCmd(a *app) *cobra.Command {
	var (
		threshold float64 // similarity threshold (0-1)
		out       output.Options
	)

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Detect duplicate or similar books",
		Long:  "Scan your shelf for potential duplicates by comparing ISBNs and titles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			if threshold <= 0 || threshold > 1 {
				return fmt.Errorf("--threshold must be in (0, 1], got %.2f", threshold)
			}
			if err := a.open(true); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			books := a.store.List()
			if len(books) < 2 {
				fmt.Fprintln(w, "Not enough books to compare.")
				return nil
			}

			duplicates := findDuplicates(books, threshold)
			if out.Is(output.OutputJSON) {
				if duplicates == nil {
					duplicates = []duplicatePair{}
				}
				return output.JSON(w, duplicates)
			}

			if len(duplicates) == 0 {
				fmt.Fprintf(w, "No duplicates found (threshold %.2f)\n", threshold)
				return nil
			}

			fmt.Fprintf(w, "Found %d potential duplicate pairs:\n\n", len(duplicates))
			for i, pair := range duplicates {
				fmt.Fprintf(w, "[%d] Score: %.2f (%s)\n", i+1, pair.Score, pair.Reason)
				fmt.Fprintf(w, "    Book A: %s (%s)\n", output.Truncate(pair.A.Title, 60), pair.A.ISBN)
				fmt.Fprintf(w, "    Book B: %s (%s)\n", output.Truncate(pair.B.Title, 60), pair.B.ISBN)
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.7, "Similarity threshold (0-1)")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
