// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import "strconv"

// Book is one record in the shelf. ISBN is the identity key; every other
// field is free-form.
type Book struct {
	Title     string `json:"title" yaml:"title"`
	Author    string `json:"author" yaml:"author"`
	ISBN      string `json:"isbn" yaml:"isbn"`
	Publisher string `json:"publisher" yaml:"publisher"`
	Cover     string `json:"cover" yaml:"cover"`       // hardcover, paperback, ...
	Category  string `json:"category" yaml:"category"` // fiction, history, ...
	Edition   int    `json:"edition" yaml:"edition"`
	Year      int    `json:"year" yaml:"year"`
	Pages     int    `json:"pages" yaml:"pages"`
}

// Column names in persisted order. CSV headers and table columns follow it.
const (
	FieldTitle     = "title"
	FieldAuthor    = "author"
	FieldISBN      = "isbn"
	FieldPublisher = "publisher"
	FieldCover     = "cover"
	FieldCategory  = "category"
	FieldEdition   = "edition"
	FieldYear      = "year"
	FieldPages     = "pages"
)

// Fields returns the canonical field order.
func Fields() []string {
	return []string{
		FieldTitle, FieldAuthor, FieldISBN, FieldPublisher, FieldCover,
		FieldCategory, FieldEdition, FieldYear, FieldPages,
	}
}

// IsIntField reports whether the named field holds an integer.
func IsIntField(name string) bool {
	switch name {
	case FieldEdition, FieldYear, FieldPages:
		return true
	}
	return false
}

// Row renders the book as strings in Fields() order.
func (b Book) Row() []string {
	return []string{
		b.Title,
		b.Author,
		b.ISBN,
		b.Publisher,
		b.Cover,
		b.Category,
		strconv.Itoa(b.Edition),
		strconv.Itoa(b.Year),
		strconv.Itoa(b.Pages),
	}
}
