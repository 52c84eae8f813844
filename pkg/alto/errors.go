package alto

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so batch callers can decide how to report it
type Kind string

const (
	KindNotFound  Kind = "not_found"  // Input file absent or unreadable
	KindParse     Kind = "parse"      // Malformed XML or geometry
	KindImageRead Kind = "image_read" // Raster could not be decoded
	KindWrite     Kind = "write"      // Output could not be persisted
)

// Sentinels for use with errors.Is
var (
	ErrNotFound  = &Error{Kind: KindNotFound}
	ErrParse     = &Error{Kind: KindParse}
	ErrImageRead = &Error{Kind: KindImageRead}
	ErrWrite     = &Error{Kind: KindWrite}
)

// Error is the error type returned by every altopress operation
type Error struct {
	Kind Kind
	Path string // File the failure relates to, if any
	Err  error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Path == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// NotFoundError wraps err as a KindNotFound failure for path
func NotFoundError(path string, err error) *Error {
	return &Error{Kind: KindNotFound, Path: path, Err: err}
}

// ParseError wraps err as a KindParse failure for path
func ParseError(path string, err error) *Error {
	return &Error{Kind: KindParse, Path: path, Err: err}
}

// ImageReadError wraps err as a KindImageRead failure for path
func ImageReadError(path string, err error) *Error {
	return &Error{Kind: KindImageRead, Path: path, Err: err}
}

// WriteError wraps err as a KindWrite failure for path
func WriteError(path string, err error) *Error {
	return &Error{Kind: KindWrite, Path: path, Err: err}
}
