// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// prompter reads answers line by line. Every method returns io.EOF once
// input runs out.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// choose repeats the question until the answer is one of choices.
func (p *prompter) choose(label string, choices ...string) (string, error) {
	q := fmt.Sprintf("%s [%s]", label, strings.Join(choices, "/"))
	for {
		ans, err := p.ask(q)
		if err != nil {
			return "", err
		}
		ans = strings.ToLower(ans)
		if slices.Contains(choices, ans) {
			return ans, nil
		}
		fmt.Fprintln(p.out, "Please select one of the available options")
	}
}

func (p *prompter) confirm(label string) (bool, error) {
	for {
		ans, err := p.ask(label + " [y/n]")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(ans) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please enter Y or N")
	}
}

// askInt accepts a blank answer as 0. quit is returned untouched so the
// caller can leave the mode.
func (p *prompter) askInt(label, quit string) (n int, raw string, err error) {
	for {
		raw, err = p.ask(label)
		if err != nil || raw == "" || strings.EqualFold(raw, quit) {
			return 0, raw, err
		}
		n, err = strconv.Atoi(raw)
		if err == nil && n >= 0 {
			return n, raw, nil
		}
		fmt.Fprintln(p.out, "Please enter a valid non-negative number")
	}
}
