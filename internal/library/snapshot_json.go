// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// JSONSnapshot stores the shelf as one indented JSON array.
type JSONSnapshot struct{}

// bookRecord mirrors Book with pointer fields so missing keys can be told
// apart from zero values.
type bookRecord struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	ISBN      *string `json:"isbn"`
	Publisher *string `json:"publisher"`
	Cover     *string `json:"cover"`
	Category  *string `json:"category"`
	Edition   *int    `json:"edition"`
	Year      *int    `json:"year"`
	Pages     *int    `json:"pages"`
}

func (r bookRecord) book() (Book, error) {
	var missing []string
	str := func(name string, p *string) string {
		if p == nil {
			missing = append(missing, name)
			return ""
		}
		return *p
	}
	num := func(name string, p *int) int {
		if p == nil {
			missing = append(missing, name)
			return 0
		}
		return *p
	}
	b := Book{
		Title:     str(FieldTitle, r.Title),
		Author:    str(FieldAuthor, r.Author),
		ISBN:      str(FieldISBN, r.ISBN),
		Publisher: str(FieldPublisher, r.Publisher),
		Cover:     str(FieldCover, r.Cover),
		Category:  str(FieldCategory, r.Category),
		Edition:   num(FieldEdition, r.Edition),
		Year:      num(FieldYear, r.Year),
		Pages:     num(FieldPages, r.Pages),
	}
	if len(missing) > 0 {
		return Book{}, fmt.Errorf("missing fields %v", missing)
	}
	return b, nil
}

// Read decodes path. A zero-byte file is an empty shelf.
func (JSONSnapshot) Read(path string) ([]Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: KindFileNotFound, Path: path, Err: err}
		}
		return nil, &Error{Kind: KindIO, Path: path, Err: err}
	}
	if len(data) == 0 {
		return []Book{}, nil
	}
	books, err := DecodeJSON(data)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Path: path, Err: err}
	}
	return books, nil
}

// DecodeJSON parses a JSON array of books. Unknown keys, missing keys and
// wrongly typed values reject the whole document.
func DecodeJSON(data []byte) ([]Book, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []bookRecord
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("unexpected data after the book list")
	}

	books := make([]Book, 0, len(records))
	for i, r := range records {
		b, err := r.book()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		books = append(books, b)
	}
	return books, nil
}

// EncodeJSON renders books the way they are stored on disk.
func EncodeJSON(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	data, err := json.MarshalIndent(books, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Write replaces path with the encoded shelf via a temp file and rename.
func (JSONSnapshot) Write(path string, books []Book) error {
	data, err := EncodeJSON(books)
	if err != nil {
		return &Error{Kind: KindIO, Path: path, Err: err}
	}
	if err := writeAtomic(path, data); err != nil {
		return &Error{Kind: KindIO, Path: path, Err: err}
	}
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
