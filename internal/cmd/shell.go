// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-shelf/internal/convert"
	"github.com/mtreilly/arc-shelf/internal/library"
)

// shell is one interactive session over the loaded shelf.
type shell struct {
	a   *app
	p   *prompter
	out io.Writer
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse and edit the shelf interactively",
		Long: `Start an interactive session.

  [a]dd     enter books field by field ([q] leaves add mode)
  [r]emove  remove books by ISBN ([q] leaves remove mode)
  [l]ist    page through the shelf with [u]p and [d]own
  [s]earch  fuzzy search titles, authors and ISBNs
  [e]xport  write the shelf to CSV next to the data file
  [q]uit    save and exit

End of input also saves and exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := &shell{a: a, p: newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), out: cmd.OutOrStdout()}
			return sh.run()
		},
	}
}

func (s *shell) run() error {
	ok, err := s.load()
	if err != nil || !ok {
		return err
	}

	for {
		choice, err := s.p.choose("[a]dd, [r]emove, [l]ist, [s]earch, [e]xport, [q]uit", "a", "r", "l", "s", "e", "q")
		if errors.Is(err, io.EOF) {
			choice = "q"
		} else if err != nil {
			return err
		}

		switch choice {
		case "a":
			err = s.add()
		case "r":
			err = s.remove()
		case "l":
			err = s.list()
		case "s":
			err = s.search()
		case "e":
			err = s.export()
		case "q":
			return s.a.save()
		}
		if errors.Is(err, io.EOF) {
			return s.a.save()
		}
		if err != nil {
			return err
		}
	}
}

// load reports false when the user declines to create a missing file.
func (s *shell) load() (bool, error) {
	path := s.a.dataFile()
	err := s.a.store.Load(path)
	switch {
	case err == nil:
		if fi, statErr := os.Stat(path); statErr == nil && fi.Size() == 0 {
			fmt.Fprintf(s.out, "Empty file %s, continuing.\n", path)
		}
		return true, nil
	case errors.Is(err, library.ErrFileNotFound):
		fmt.Fprintf(s.out, "The %s file could not be located.\n", path)
		create, err := s.p.confirm(fmt.Sprintf("Create a new %s file?", path))
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return create, err
	default:
		fmt.Fprintf(s.out, "ERROR: %v\n", err)
		return false, err
	}
}

func (s *shell) add() error {
	var status string
	for {
		fmt.Fprintln(s.out, "Add mode. Press [q] to exit.")
		if status != "" {
			fmt.Fprintf(s.out, "STATUS: %s\n", status)
		}

		var b library.Book
		for _, f := range []struct {
			label string
			dst   *string
		}{
			{"Title", &b.Title},
			{"Author", &b.Author},
			{"ISBN", &b.ISBN},
			{"Publisher", &b.Publisher},
			{"Cover", &b.Cover},
			{"Category", &b.Category},
		} {
			v, err := s.p.ask(f.label)
			if err != nil {
				return err
			}
			if strings.EqualFold(v, "q") {
				return nil
			}
			*f.dst = v
		}
		for _, f := range []struct {
			label string
			dst   *int
		}{
			{"Edition", &b.Edition},
			{"Year", &b.Year},
			{"Pages", &b.Pages},
		} {
			n, raw, err := s.p.askInt(f.label, "q")
			if err != nil {
				return err
			}
			if strings.EqualFold(raw, "q") {
				return nil
			}
			*f.dst = n
		}

		status = ""
		if err := s.a.store.Add(b); err != nil {
			status = err.Error()
			continue
		}
		fmt.Fprintf(s.out, "Added %q.\n", b.Title)
	}
}

func (s *shell) remove() error {
	var status string
	for {
		fmt.Fprintln(s.out, "Remove mode. Press [q] to exit.")
		if status != "" {
			fmt.Fprintf(s.out, "STATUS: %s\n", status)
		}

		isbn, err := s.p.ask("ISBN")
		if err != nil {
			return err
		}
		if strings.EqualFold(isbn, "q") {
			return nil
		}

		status = ""
		if err := s.a.store.Remove(isbn); err != nil {
			status = err.Error()
			continue
		}
		fmt.Fprintf(s.out, "Removed %s.\n", isbn)
	}
}

func (s *shell) list() error {
	pg := newPager(s.a.store.List(), s.a.cfg.List.PageSize)
	for {
		if err := pg.table().Render(s.out); err != nil {
			return err
		}
		choice, err := s.p.choose("[u]p, [d]own, [q]uit", "u", "d", "q")
		if err != nil {
			return err
		}
		switch choice {
		case "u":
			pg.up()
		case "d":
			pg.down()
		case "q":
			return nil
		}
	}
}

func (s *shell) search() error {
	query, err := s.p.ask("Search")
	if err != nil {
		return err
	}
	books := s.a.store.Search(query)
	if len(books) == 0 {
		fmt.Fprintln(s.out, "No books found.")
		return nil
	}
	t := summaryTable()
	for _, b := range books {
		t.AddRow(b.Title, b.Author, b.ISBN)
	}
	return t.Render(s.out)
}

func (s *shell) export() error {
	ok, err := s.p.confirm("Export the shelf to CSV?")
	if err != nil || !ok {
		return err
	}

	src := s.a.dataFile()
	dst := convert.CSVPath(src)
	err = convert.ExportCSV(s.a.store.List(), dst, false)
	if errors.Is(err, convert.ErrTargetExists) {
		overwrite, cerr := s.p.confirm(fmt.Sprintf("%s already exists. Overwrite?", dst))
		if cerr != nil || !overwrite {
			return cerr
		}
		err = convert.ExportCSV(s.a.store.List(), dst, true)
	}
	if err != nil {
		fmt.Fprintf(s.out, "STATUS: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.out, "File %s exported to %s.\n", src, dst)
	return nil
}
