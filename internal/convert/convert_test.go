// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtreilly/arc-shelf/internal/library"
)

var books = []library.Book{
	{Title: "Dune", Author: "Frank Herbert", ISBN: "111", Publisher: "Ace", Cover: "paperback", Category: "sci-fi", Edition: 1, Year: 1965, Pages: 412},
	{Title: "Hello, World", Author: "A \"Quoted\" Author", ISBN: "222"},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, books))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "title,author,isbn,publisher,cover,category,edition,year,pages", lines[0])
	assert.Equal(t, "Dune,Frank Herbert,111,Ace,paperback,sci-fi,1,1965,412", lines[1])
	assert.Equal(t, `"Hello, World","A ""Quoted"" Author",222,,,,0,0,0`, lines[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, nil), ErrEmptyCollection)
	assert.Empty(t, buf.String())
}

func TestReadCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, books))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, books, got)
}

func TestReadCSVAnyColumnOrder(t *testing.T) {
	in := "pages,isbn,title,author,publisher,cover,category,edition,year\n" +
		"300, 9,The Hobbit,Tolkien,Mariner,hardcover,fantasy,,1937\n"

	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, library.Book{Title: "The Hobbit", Author: "Tolkien", ISBN: "9", Publisher: "Mariner", Cover: "hardcover", Category: "fantasy", Year: 1937, Pages: 300}, got[0])
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorContains(t, err, "missing header")

	_, err = ReadCSV(strings.NewReader("title,author\nA,B\n"))
	assert.ErrorContains(t, err, "missing columns")

	_, err = ReadCSV(strings.NewReader("title,author,isbn,publisher,cover,category,edition,year,pages\nA,B,1,P,C,K,1,two,3\n"))
	assert.ErrorContains(t, err, "line 2")
	assert.ErrorContains(t, err, "column year")
}

func TestJSONToCSVAndBack(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "library.json")
	require.NoError(t, library.JSONSnapshot{}.Write(jsonPath, books))

	csvPath := CSVPath(jsonPath)
	assert.Equal(t, filepath.Join(dir, "library.csv"), csvPath)
	require.NoError(t, JSONToCSV(jsonPath, csvPath, false))

	assert.ErrorIs(t, JSONToCSV(jsonPath, csvPath, false), ErrTargetExists)
	require.NoError(t, JSONToCSV(jsonPath, csvPath, true))

	backPath := filepath.Join(dir, "restored.json")
	require.NoError(t, CSVToJSON(csvPath, backPath, false))

	got, err := library.JSONSnapshot{}.Read(backPath)
	require.NoError(t, err)
	assert.Equal(t, books, got)
}

func TestJSONToCSVEmptyLibrary(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "library.json")
	require.NoError(t, os.WriteFile(jsonPath, nil, 0o644))

	err := JSONToCSV(jsonPath, CSVPath(jsonPath), false)
	assert.ErrorIs(t, err, ErrEmptyCollection)
	assert.NoFileExists(t, CSVPath(jsonPath))
}

func TestJSONPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "books.json"), JSONPath(filepath.Join("data", "books.csv")))
}
