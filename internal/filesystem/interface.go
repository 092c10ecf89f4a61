package filesystem

import (
	"io/fs"
)

// FileSystem abstracts the file operations used to persist projects so the
// persistence logic can run against an in-memory tree in tests
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Remove(path string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	IsDir(path string) bool
	IsFile(path string) bool
	Getwd() (string, error)
}
