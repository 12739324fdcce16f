// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"fmt"
)

// ErrorKind names the failure a store operation reported.
type ErrorKind int

const (
	KindDuplicateISBN ErrorKind = iota + 1
	KindNotFound
	KindFileNotFound
	KindDecode
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindDuplicateISBN:
		return "duplicate isbn"
	case KindNotFound:
		return "not found"
	case KindFileNotFound:
		return "file not found"
	case KindDecode:
		return "decode error"
	case KindIO:
		return "io error"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrDuplicateISBN = errors.New("duplicate isbn")
	ErrNotFound      = errors.New("book not found")
	ErrFileNotFound  = errors.New("library file not found")
	ErrDecode        = errors.New("malformed library file")
	ErrIO            = errors.New("library file i/o failed")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindDuplicateISBN:
		return ErrDuplicateISBN
	case KindNotFound:
		return ErrNotFound
	case KindFileNotFound:
		return ErrFileNotFound
	case KindDecode:
		return ErrDecode
	case KindIO:
		return ErrIO
	}
	return nil
}

// Error is the failure half of every store result. A nil error is success.
type Error struct {
	Kind  ErrorKind
	ISBN  string // DuplicateISBN, NotFound
	Title string // title of the conflicting book for DuplicateISBN
	Path  string // FileNotFound, Decode, IO
	Err   error  // underlying cause, if any
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindDuplicateISBN:
		msg = fmt.Sprintf("ISBN %s is already used by %q", e.ISBN, e.Title)
	case KindNotFound:
		msg = fmt.Sprintf("no book with ISBN %s", e.ISBN)
	case KindFileNotFound:
		msg = fmt.Sprintf("file %s does not exist", e.Path)
	case KindDecode:
		msg = fmt.Sprintf("cannot decode %s", e.Path)
	case KindIO:
		msg = fmt.Sprintf("cannot access %s", e.Path)
	default:
		msg = "library error"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of a store error, or 0 when err is not one.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
