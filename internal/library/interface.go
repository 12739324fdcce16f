// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

// LibraryStore is the interface for holding and persisting the shelf.
// Implementations keep the whole collection in memory and move it to and
// from disk as a single snapshot.
type LibraryStore interface {
	// Record operations
	Add(Book) error
	Remove(isbn string) error
	Get(isbn string) (Book, bool)
	List() []Book
	Len() int

	// Fuzzy search over title, author and ISBN
	Search(query string) []Book
	Rank(query string) []Match

	// Snapshot persistence
	Load(path string) error
	Save(path string) error
	Path() string
}

// Snapshot reads and writes a whole collection at once.
type Snapshot interface {
	Read(path string) ([]Book, error)
	Write(path string, books []Book) error
}
