// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"log/slog"
	"slices"
)

// DefaultSearchThreshold is the minimum similarity for a fuzzy hit.
const DefaultSearchThreshold = 0.5

// Store keeps the shelf in memory, in insertion order, and moves it to and
// from disk through a Snapshot. It is not safe for concurrent use.
type Store struct {
	books     []Book
	path      string
	snapshot  Snapshot
	threshold float64
	log       *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSnapshot selects the on-disk format. The default is JSONSnapshot.
func WithSnapshot(s Snapshot) Option {
	return func(st *Store) { st.snapshot = s }
}

// WithSearchThreshold sets the fuzzy-match cutoff (0-1).
func WithSearchThreshold(t float64) Option {
	return func(st *Store) { st.threshold = t }
}

// WithLogger sets the logger used for store events.
func WithLogger(l *slog.Logger) Option {
	return func(st *Store) { st.log = l }
}

// WithPath sets the backing file without loading it.
func WithPath(path string) Option {
	return func(st *Store) { st.path = path }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		snapshot:  JSONSnapshot{},
		threshold: DefaultSearchThreshold,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends b unless its ISBN is already on the shelf.
func (s *Store) Add(b Book) error {
	if i := s.indexOf(b.ISBN); i >= 0 {
		return &Error{Kind: KindDuplicateISBN, ISBN: b.ISBN, Title: s.books[i].Title}
	}
	s.books = append(s.books, b)
	s.log.Debug("library: added book", "isbn", b.ISBN, "title", b.Title, "count", len(s.books))
	return nil
}

// Remove deletes the first book with the given ISBN, keeping the order of
// the rest.
func (s *Store) Remove(isbn string) error {
	i := s.indexOf(isbn)
	if i < 0 {
		return &Error{Kind: KindNotFound, ISBN: isbn}
	}
	s.books = slices.Delete(s.books, i, i+1)
	s.log.Debug("library: removed book", "isbn", isbn, "count", len(s.books))
	return nil
}

// Get returns the first book with the given ISBN.
func (s *Store) Get(isbn string) (Book, bool) {
	if i := s.indexOf(isbn); i >= 0 {
		return s.books[i], true
	}
	return Book{}, false
}

// List returns a copy of the shelf in stored order.
func (s *Store) List() []Book {
	return slices.Clone(s.books)
}

// Len returns the number of books on the shelf.
func (s *Store) Len() int { return len(s.books) }

// Path returns the file last loaded from or saved to.
func (s *Store) Path() string { return s.path }

// Threshold returns the fuzzy-match cutoff in use.
func (s *Store) Threshold() float64 { return s.threshold }

// Search ranks the shelf against query. See Searcher for the policy.
func (s *Store) Search(query string) []Book {
	return Searcher{Threshold: s.threshold}.Search(s.books, query)
}

// Rank is Search with match tier and score attached.
func (s *Store) Rank(query string) []Match {
	return Searcher{Threshold: s.threshold}.Rank(s.books, query)
}

// Load replaces the shelf with the contents of path. On failure the shelf
// is left as it was.
func (s *Store) Load(path string) error {
	books, err := s.snapshot.Read(path)
	if err != nil {
		return err
	}
	if dups := duplicateISBNs(books); len(dups) > 0 {
		s.log.Warn("library: file contains duplicate ISBNs", "path", path, "isbns", dups)
	}
	s.books = books
	s.path = path
	s.log.Debug("library: loaded", "path", path, "count", len(books))
	return nil
}

// Save writes the whole shelf to path.
func (s *Store) Save(path string) error {
	if err := s.snapshot.Write(path, s.books); err != nil {
		return err
	}
	s.path = path
	s.log.Debug("library: saved", "path", path, "count", len(s.books))
	return nil
}

func (s *Store) indexOf(isbn string) int {
	return slices.IndexFunc(s.books, func(b Book) bool { return b.ISBN == isbn })
}

func duplicateISBNs(books []Book) []string {
	seen := make(map[string]bool, len(books))
	var dups []string
	for _, b := range books {
		if seen[b.ISBN] {
			dups = append(dups, b.ISBN)
			continue
		}
		seen[b.ISBN] = true
	}
	return dups
}

var _ LibraryStore = (*Store)(nil)
