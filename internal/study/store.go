package study

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-ksp/internal/filesystem"
	"github.com/jakoblorz/go-ksp/internal/paths"
	"go.uber.org/zap"
)

// Suffix is the file extension of saved studies
const Suffix = ".hdf"

// Store applies the plugin's save/open policy on top of a Document
type Store struct {
	fs  filesystem.FileSystem
	doc Document
	log *zap.Logger
}

// NewStore creates a Store. A nil logger disables logging.
func NewStore(fs filesystem.FileSystem, doc Document, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		fs:  fs,
		doc: doc,
		log: log.Named("study"),
	}
}

// Document returns the wrapped host document
func (s *Store) Document() Document {
	return s.doc
}

// Save writes the study as a single file, forcing the .hdf suffix.
// It reports whether the file was written.
func (s *Store) Save(path string) bool {
	if err := paths.Check(path); err != nil {
		s.log.Error("Study could not be saved", zap.Error(err))
		return false
	}

	path = paths.WithSuffix(path, Suffix)

	if s.fs.IsFile(path) {
		s.log.Debug("Study file exists already and will be overwritten", zap.String("path", path))
	}

	// the host crashes when saving into a folder that does not exist yet
	if dir := filepath.Dir(path); !s.fs.IsDir(dir) {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			s.log.Error("Study could not be saved", zap.String("path", path), zap.Error(err))
			return false
		}
	}

	saved, err := guard(func() (bool, error) { return s.doc.SaveAs(path) })
	if err != nil {
		saved = false
		s.log.Error("Exception when saving study", zap.Error(err))
	} else if saved && !s.fs.IsFile(path) {
		saved = false
		s.log.Error("Host reported a successful save but the study file was not created", zap.String("path", path))
	}

	if saved {
		s.log.Debug("Study was saved", zap.String("path", path))
	} else {
		s.log.Error("Study could not be saved", zap.String("path", path))
	}

	return saved
}

// Open loads the study from path and reports whether it succeeded
func (s *Store) Open(path string) bool {
	if err := paths.Check(path); err != nil {
		s.log.Error("Study could not be opened", zap.Error(err))
		return false
	}

	if !s.fs.IsFile(path) {
		s.log.Error("Study file does not exist", zap.String("path", path))
		return false
	}

	if paths.Suffix(path) != Suffix {
		s.log.Warn("Opening study from file without \".hdf\" extension", zap.String("path", path))
	}

	if s.doc.IsModified() && s.doc.ObjectCount() > 0 {
		s.log.Warn("Opening study when current study has unsaved changes")
	}

	opened, err := guard(func() (bool, error) { return s.doc.Open(path) })
	if err != nil {
		opened = false
		s.log.Error("Exception when opening study", zap.Error(err))
	}

	if opened {
		s.log.Debug("Study was opened", zap.String("path", path))
	} else {
		s.log.Error("Study could not be opened", zap.String("path", path))
	}

	return opened
}

// Reset empties the study; no objects are left afterwards
func (s *Store) Reset() {
	s.log.Debug("Resetting study")
	s.doc.Clear()
	s.doc.Init()
}

func (s *Store) IsModified() bool {
	return s.doc.IsModified()
}

func (s *Store) ObjectCount() int {
	return s.doc.ObjectCount()
}

// Version is the host platform version reported by the document
func (s *Store) Version() string {
	return s.doc.Version()
}

// guard converts a panic inside the host call into an error
func guard(call func() (bool, error)) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("host panicked: %v", r)
		}
	}()
	return call()
}
