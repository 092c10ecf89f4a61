// Package paths holds the path policy shared by the project and study layers.
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is returned by Check for paths that can never name a project.
var ErrInvalidPath = errors.New("invalid path")

// invalidChars are rejected on every platform so that projects stay portable.
const invalidChars = "<>\"|?*\x00"

// Check validates path syntactically. It does not touch the filesystem.
func Check(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}
	if i := strings.IndexAny(path, invalidChars); i >= 0 {
		return fmt.Errorf("%w: %q contains invalid character %q", ErrInvalidPath, path, path[i])
	}
	return nil
}

// Suffix returns the extension of the final path element, including the dot.
// A name consisting only of a leading dot and text (".cache") has no suffix.
func Suffix(path string) string {
	base := filepath.Base(filepath.Clean(path))
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

// WithSuffix replaces the suffix of the final path element with suffix,
// adding it when there is none. Applying it twice yields the same path.
func WithSuffix(path, suffix string) string {
	clean := filepath.Clean(path)
	base := filepath.Base(clean)
	stem := strings.TrimSuffix(base, Suffix(clean))
	return filepath.Join(filepath.Dir(clean), stem+suffix)
}
