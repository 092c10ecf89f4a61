// Package study wraps the host platform's document ("study") behind the
// boolean contract the project manager relies on.
package study

// Document is the raw host document API. Implementations may return errors
// or even panic; Store turns every failure into a logged false.
type Document interface {
	SaveAs(path string) (bool, error)
	Open(path string) (bool, error)
	Clear()
	Init()
	IsModified() bool
	ObjectCount() int
	Version() string
}
