// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteSnapshot stores the shelf in a single SQLite table. Every Write
// replaces all rows inside one transaction, so the file always holds a
// complete collection.
type SQLiteSnapshot struct{}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS books (
	position INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	isbn TEXT NOT NULL,
	publisher TEXT NOT NULL,
	cover TEXT NOT NULL,
	category TEXT NOT NULL,
	edition INTEGER NOT NULL,
	year INTEGER NOT NULL,
	pages INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_books_isbn ON books(isbn);
`

// Read loads all rows in position order. A zero-byte file is an empty shelf.
func (SQLiteSnapshot) Read(path string) ([]Book, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: KindFileNotFound, Path: path, Err: err}
		}
		return nil, &Error{Kind: KindIO, Path: path, Err: err}
	}
	if info.Size() == 0 {
		return []Book{}, nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Path: path, Err: err}
	}
	defer db.Close()

	books, err := readBooks(db)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Path: path, Err: err}
	}
	return books, nil
}

func readBooks(db *sql.DB) ([]Book, error) {
	rows, err := db.Query(`
		SELECT title, author, isbn, publisher, cover, category, edition, year, pages
		FROM books ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.Title, &b.Author, &b.ISBN, &b.Publisher, &b.Cover, &b.Category, &b.Edition, &b.Year, &b.Pages); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Write replaces the table contents with books.
func (SQLiteSnapshot) Write(path string, books []Book) error {
	if err := writeBooks(path, books); err != nil {
		return &Error{Kind: KindIO, Path: path, Err: err}
	}
	return nil
}

func writeBooks(path string, books []Book) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM books`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO books (position, title, author, isbn, publisher, cover, category, edition, year, pages)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range books {
		if _, err := stmt.Exec(i, b.Title, b.Author, b.ISBN, b.Publisher, b.Cover, b.Category, b.Edition, b.Year, b.Pages); err != nil {
			return fmt.Errorf("insert %s: %w", b.ISBN, err)
		}
	}

	return tx.Commit()
}
