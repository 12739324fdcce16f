// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package convert moves a shelf between its JSON file and CSV.
package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mtreilly/arc-shelf/internal/library"
)

var (
	// ErrEmptyCollection is returned when there is no row to derive a CSV from.
	ErrEmptyCollection = errors.New("no books to export")
	// ErrTargetExists is returned instead of overwriting an existing file.
	ErrTargetExists = errors.New("target file already exists")
)

// CSVPath returns the CSV file that sits next to a data file.
func CSVPath(dataPath string) string {
	return strings.TrimSuffix(dataPath, filepath.Ext(dataPath)) + ".csv"
}

// JSONPath returns the JSON file that sits next to a CSV file.
func JSONPath(csvPath string) string {
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".json"
}

// WriteCSV writes a header row followed by one row per book.
func WriteCSV(w io.Writer, books []library.Book) error {
	if len(books) == 0 {
		return ErrEmptyCollection
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(library.Fields()); err != nil {
		return err
	}
	for _, b := range books {
		if err := cw.Write(b.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a CSV with a header naming all book fields, in any order.
// Blank integer cells read as zero.
func ReadCSV(r io.Reader) ([]library.Book, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("csv: missing header row")
	}
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, f := range library.Fields() {
		if _, ok := col[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv: header is missing columns %v", missing)
	}

	books := []library.Book{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		b, err := bookFromRecord(rec, col)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		books = append(books, b)
	}
	return books, nil
}

func bookFromRecord(rec []string, col map[string]int) (library.Book, error) {
	cell := func(name string) string { return rec[col[name]] }
	num := func(name string) (int, error) {
		v := strings.TrimSpace(cell(name))
		if v == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not a number", name, v)
		}
		return n, nil
	}

	b := library.Book{
		Title:     cell(library.FieldTitle),
		Author:    cell(library.FieldAuthor),
		ISBN:      cell(library.FieldISBN),
		Publisher: cell(library.FieldPublisher),
		Cover:     cell(library.FieldCover),
		Category:  cell(library.FieldCategory),
	}
	var err error
	if b.Edition, err = num(library.FieldEdition); err != nil {
		return b, err
	}
	if b.Year, err = num(library.FieldYear); err != nil {
		return b, err
	}
	if b.Pages, err = num(library.FieldPages); err != nil {
		return b, err
	}
	return b, nil
}

// JSONToCSV converts a saved JSON shelf into a CSV file.
func JSONToCSV(jsonPath, csvPath string, overwrite bool) error {
	books, err := library.JSONSnapshot{}.Read(jsonPath)
	if err != nil {
		return err
	}
	return ExportCSV(books, csvPath, overwrite)
}

// CSVToJSON converts a CSV file into a JSON shelf.
func CSVToJSON(csvPath, jsonPath string, overwrite bool) error {
	books, err := ImportCSV(csvPath)
	if err != nil {
		return err
	}
	if err := checkTarget(jsonPath, overwrite); err != nil {
		return err
	}
	return library.JSONSnapshot{}.Write(jsonPath, books)
}

// ExportCSV writes books to csvPath.
func ExportCSV(books []library.Book, csvPath string, overwrite bool) error {
	if len(books) == 0 {
		return ErrEmptyCollection
	}
	if err := checkTarget(csvPath, overwrite); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(csvPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, books); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", csvPath, err)
	}
	return f.Close()
}

// ImportCSV reads books from csvPath.
func ImportCSV(csvPath string) ([]library.Book, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	books, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", csvPath, err)
	}
	return books, nil
}

func checkTarget(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, ErrTargetExists)
	}
	return nil
}
