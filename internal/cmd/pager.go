// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-shelf/internal/library"
	"github.com/mtreilly/arc-shelf/internal/output"
)

// pager windows a book list. Pages are zero-based internally and shown
// one-based.
type pager struct {
	books []library.Book
	size  int
	page  int
}

func newPager(books []library.Book, size int) *pager {
	if size < 1 {
		size = 1
	}
	return &pager{books: books, size: size}
}

// pages is at least 1 so an empty shelf still shows "Page 1 of 1".
func (p *pager) pages() int {
	n := (len(p.books) + p.size - 1) / p.size
	if n < 1 {
		return 1
	}
	return n
}

func (p *pager) bounds() (start, end int) {
	start = p.page * p.size
	end = min(start+p.size, len(p.books))
	start = min(start, end)
	return start, end
}

func (p *pager) current() []library.Book {
	start, end := p.bounds()
	return p.books[start:end]
}

// seek moves to page (zero-based), clamped to the valid range.
func (p *pager) seek(page int) {
	p.page = max(0, min(page, p.pages()-1))
}

func (p *pager) up() bool {
	if p.page == 0 {
		return false
	}
	p.page--
	return true
}

func (p *pager) down() bool {
	if _, end := p.bounds(); end >= len(p.books) {
		return false
	}
	p.page++
	return true
}

func (p *pager) table() *output.Table {
	t := bookTable()
	for _, b := range p.current() {
		t.AddRow(b.Row()...)
	}
	t.SetTitle(fmt.Sprintf("Page %d of %d", p.page+1, p.pages()))
	return t
}

// bookTable has one column per book field.
func bookTable() *output.Table {
	return output.NewTable("Title", "Author", "ISBN", "Publisher", "Cover", "Category", "Edition", "Year", "Pages")
}

// summaryTable is the narrow table used for search results.
func summaryTable() *output.Table {
	return output.NewTable("Title", "Author", "ISBN")
}
