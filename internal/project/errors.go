package project

import (
	"errors"
	"fmt"
)

// Kind classifies caller errors returned by Save and Open
type Kind int

const (
	KindPathInvalid Kind = iota + 1
	KindNotADirectory
	KindMissingFile
	KindUnknownExtension
)

// Sentinels for errors.Is, one per kind
var (
	ErrPathInvalid      = errors.New("invalid project path")
	ErrNotADirectory    = errors.New("project path is not a directory")
	ErrMissingFile      = errors.New("project file is missing")
	ErrUnknownExtension = errors.New("unknown application module")
)

func (k Kind) String() string {
	switch k {
	case KindPathInvalid:
		return "path invalid"
	case KindNotADirectory:
		return "not a directory"
	case KindMissingFile:
		return "missing file"
	case KindUnknownExtension:
		return "unknown extension"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindPathInvalid:
		return ErrPathInvalid
	case KindNotADirectory:
		return ErrNotADirectory
	case KindMissingFile:
		return ErrMissingFile
	case KindUnknownExtension:
		return ErrUnknownExtension
	}
	return nil
}

// Error is a caller error. Path names the offending path, file or module id.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel()
	if msg == nil {
		msg = errors.New(e.Kind.String())
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", msg, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %q", msg, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of a project error in err's chain, or 0
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
