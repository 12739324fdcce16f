// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Column colours cycle across the table.
var palette = []lipgloss.Color{"#94e2d5", "#74c7ec", "#b4befe"}

// Table collects rows and renders them with horizontal rules only and
// dimmed alternate rows.
type Table struct {
	headers []string
	rows    [][]string
	title   string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row. Missing cells are left blank.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// SetTitle puts a caption in a frame around the table.
func (t *Table) SetTitle(title string) { t.title = title }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) String() string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().
				Foreground(palette[col%len(palette)]).
				Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Bold(true)
			case row%2 == 1:
				return s.Faint(true)
			}
			return s
		})

	body := tbl.String()
	if t.title == "" {
		return body
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	return frame.Render(strings.Join([]string{t.title, body}, "\n"))
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	_, err := fmt.Fprintln(w, t.String())
	return err
}
