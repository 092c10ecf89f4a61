package study

import (
	"errors"
	"testing"

	"github.com/jakoblorz/go-ksp/internal/filesystem"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeDocument writes marker files into the mock filesystem
type fakeDocument struct {
	fs        *filesystem.MockFileSystem
	saveOK    bool
	saveErr   error
	skipWrite bool
	openOK    bool
	panicMsg  string
	modified  bool
	objects   int
	savedTo   []string
	openedAt  []string
	cleared   bool
}

func (f *fakeDocument) SaveAs(path string) (bool, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.savedTo = append(f.savedTo, path)
	if f.saveErr != nil {
		return false, f.saveErr
	}
	if f.saveOK && !f.skipWrite {
		f.fs.AddFile(path, []byte("study"))
	}
	return f.saveOK, nil
}

func (f *fakeDocument) Open(path string) (bool, error) {
	f.openedAt = append(f.openedAt, path)
	return f.openOK, nil
}

func (f *fakeDocument) Clear()           { f.cleared = true; f.objects = 0 }
func (f *fakeDocument) Init()            { f.modified = false }
func (f *fakeDocument) IsModified() bool { return f.modified }
func (f *fakeDocument) ObjectCount() int { return f.objects }
func (f *fakeDocument) Version() string  { return "9.3.0" }

func newTestStore(doc *fakeDocument) (*Store, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewStore(doc.fs, doc, zap.New(core)), logs
}

func hasLog(logs *observer.ObservedLogs, level zapcore.Level, msg string) bool {
	for _, e := range logs.All() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

func TestStore_Save(t *testing.T) {
	t.Run("forces suffix and creates folder", func(t *testing.T) {
		mfs := filesystem.NewMockFileSystem()
		doc := &fakeDocument{fs: mfs, saveOK: true}
		store, logs := newTestStore(doc)

		require.True(t, store.Save("/data/new/study"))
		require.Equal(t, []string{"/data/new/study.hdf"}, doc.savedTo)
		require.True(t, mfs.IsDir("/data/new"))
		require.True(t, hasLog(logs, zapcore.DebugLevel, "Study was saved"))
	})

	t.Run("existing file is overwritten", func(t *testing.T) {
		mfs := filesystem.NewMockFileSystem()
		mfs.AddFile("/data/study.hdf", []byte("old"))
		doc := &fakeDocument{fs: mfs, saveOK: true}
		store, logs := newTestStore(doc)

		require.True(t, store.Save("/data/study.hdf"))
		require.True(t, hasLog(logs, zapcore.DebugLevel, "Study file exists already and will be overwritten"))
	})

	t.Run("host error is reported as false", func(t *testing.T) {
		mfs := filesystem.NewMockFileSystem()
		doc := &fakeDocument{fs: mfs, saveErr: errors.New("corba timeout")}
		store, logs := newTestStore(doc)

		require.False(t, store.Save("/data/study.hdf"))
		require.True(t, hasLog(logs, zapcore.ErrorLevel, "Exception when saving study"))
		require.True(t, hasLog(logs, zapcore.ErrorLevel, "Study could not be saved"))
	})

	t.Run("host panic is reported as false", func(t *testing.T) {
		mfs := filesystem.NewMockFileSystem()
		doc := &fakeDocument{fs: mfs, panicMsg: "segfault"}
		store, _ := newTestStore(doc)

		require.False(t, store.Save("/data/study.hdf"))
	})

	t.Run("claimed success without file", func(t *testing.T) {
		mfs := filesystem.NewMockFileSystem()
		doc := &fakeDocument{fs: mfs, saveOK: true, skipWrite: true}
		store, logs := newTestStore(doc)

		require.False(t, store.Save("/data/study.hdf"))
		require.True(t, hasLog(logs, zapcore.ErrorLevel, "Host reported a successful save but the study file was not created"))
	})

	t.Run("invalid path", func(t *testing.T) {
		mfs := filesystem.NewMockFileSystem()
		doc := &fakeDocument{fs: mfs, saveOK: true}
		store, _ := newTestStore(doc)

		require.False(t, store.Save(""))
		require.Empty(t, doc.savedTo)
	})
}

func TestStore_Open(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		mfs := filesystem.NewMockFileSystem()
		doc := &fakeDocument{fs: mfs, openOK: true}
		store, logs := newTestStore(doc)

		require.False(t, store.Open("/data/study.hdf"))
		require.Empty(t, doc.openedAt)
		require.True(t, hasLog(logs, zapcore.ErrorLevel, "Study file does not exist"))
	})

	t.Run("warns about suffix and unsaved study", func(t *testing.T) {
		mfs := filesystem.NewMockFileSystem()
		mfs.AddFile("/data/study.bin", []byte("study"))
		doc := &fakeDocument{fs: mfs, openOK: true, modified: true, objects: 3}
		store, logs := newTestStore(doc)

		require.True(t, store.Open("/data/study.bin"))
		require.True(t, hasLog(logs, zapcore.WarnLevel, "Opening study from file without \".hdf\" extension"))
		require.True(t, hasLog(logs, zapcore.WarnLevel, "Opening study when current study has unsaved changes"))
	})

	t.Run("host failure", func(t *testing.T) {
		mfs := filesystem.NewMockFileSystem()
		mfs.AddFile("/data/study.hdf", []byte("study"))
		doc := &fakeDocument{fs: mfs}
		store, logs := newTestStore(doc)

		require.False(t, store.Open("/data/study.hdf"))
		require.True(t, hasLog(logs, zapcore.ErrorLevel, "Study could not be opened"))
	})
}

func TestStore_Reset(t *testing.T) {
	doc := &fakeDocument{fs: filesystem.NewMockFileSystem(), modified: true, objects: 4}
	store, _ := newTestStore(doc)

	store.Reset()
	require.True(t, doc.cleared)
	require.False(t, store.IsModified())
	require.Equal(t, 0, store.ObjectCount())
	require.Equal(t, "9.3.0", store.Version())
}
