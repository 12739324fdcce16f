// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <isbn>...",
		Aliases: []string{"rm"},
		Short:   "Remove books by ISBN",
		Long: `Remove one or more books. Unknown ISBNs are reported and skipped;
the rest are still removed.

Examples:
  arc-shelf remove 9780441013593
  arc-shelf rm 111 222 333`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(false); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var failed []error
			removed := 0
			for _, isbn := range args {
				b, _ := a.store.Get(isbn)
				if err := a.store.Remove(isbn); err != nil {
					fmt.Fprintf(out, "STATUS: %v\n", err)
					failed = append(failed, err)
					continue
				}
				fmt.Fprintf(out, "Removed %q (ISBN %s).\n", b.Title, isbn)
				removed++
			}

			if removed > 0 {
				if err := a.save(); err != nil {
					return err
				}
			}
			return errors.Join(failed...)
		},
	}
	return cmd
}
