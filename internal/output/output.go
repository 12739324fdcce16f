// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// Format selects how a command prints its result.
type Format string

const (
	OutputTable Format = "table"
	OutputJSON  Format = "json"
)

var formats = []Format{OutputTable, OutputJSON}

// Options holds the --output flag of one command.
type Options struct {
	raw    string
	format Format
}

// AddOutputFlags registers --output/-o with def as the default.
func (o *Options) AddOutputFlags(cmd *cobra.Command, def Format) {
	cmd.Flags().StringVarP(&o.raw, "output", "o", string(def), "Output format: table, json")
}

// Resolve validates the flag value. Call it at the start of RunE.
func (o *Options) Resolve() error {
	f := Format(o.raw)
	if f == "" {
		f = OutputTable
	}
	if !slices.Contains(formats, f) {
		return fmt.Errorf("unsupported output format %q (choose table or json)", o.raw)
	}
	o.format = f
	return nil
}

// Is reports whether the resolved format is f.
func (o *Options) Is(f Format) bool { return o.format == f }

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Truncate shortens s to at most width terminal cells.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
