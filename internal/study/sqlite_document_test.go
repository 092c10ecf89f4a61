package study

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakoblorz/go-ksp/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDocument_SaveOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salome_study.hdf")

	doc := NewSQLiteDocument("9.3.0")
	box, err := doc.AddObject("GEOM", "Box_1")
	require.NoError(t, err)
	_, err = doc.AddObject("GEOM", "OX")
	require.NoError(t, err)
	mesh, err := doc.AddObject("SMESH", "Mesh_1")
	require.NoError(t, err)

	require.Equal(t, "0:1:1:1", box)
	require.Equal(t, "0:1:2:1", mesh)
	require.True(t, doc.IsModified())
	require.Equal(t, 3, doc.ObjectCount())

	ok, err := doc.SaveAs(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, doc.IsModified())

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temp file must be renamed away")

	restored := NewSQLiteDocument("9.3.0")
	ok, err = restored.Open(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, doc.Objects(), restored.Objects())

	obj, found := restored.FindObject(mesh)
	require.True(t, found)
	require.Equal(t, "Mesh_1", obj.Name)

	// numbering continues per component after a reload
	next, err := restored.AddObject("GEOM", "OY")
	require.NoError(t, err)
	require.Equal(t, "0:1:1:3", next)
}

func TestSQLiteDocument_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salome_study.hdf")

	doc := NewSQLiteDocument("9.3.0")
	_, err := doc.AddObject("GEOM", "Box_1")
	require.NoError(t, err)
	_, err = doc.SaveAs(path)
	require.NoError(t, err)

	doc.Clear()
	doc.Init()
	_, err = doc.AddObject("SMESH", "Mesh_2")
	require.NoError(t, err)
	_, err = doc.SaveAs(path)
	require.NoError(t, err)

	restored := NewSQLiteDocument("9.3.0")
	_, err = restored.Open(path)
	require.NoError(t, err)
	require.Equal(t, 1, restored.ObjectCount())
	require.Equal(t, "Mesh_2", restored.Objects()[0].Name)
}

func TestSQLiteDocument_OpenFailures(t *testing.T) {
	dir := t.TempDir()

	doc := NewSQLiteDocument("9.3.0")
	ok, err := doc.Open(filepath.Join(dir, "missing.hdf"))
	require.Error(t, err)
	require.False(t, ok)

	garbage := filepath.Join(dir, "garbage.hdf")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not sqlite"), 0644))
	ok, err = doc.Open(garbage)
	require.Error(t, err)
	require.False(t, ok)
}

func TestSQLiteDocument_AddObjectValidation(t *testing.T) {
	doc := NewSQLiteDocument("9.3.0")
	_, err := doc.AddObject("", "Box")
	require.Error(t, err)
	_, err = doc.AddObject("GEOM", " ")
	require.Error(t, err)
	require.False(t, doc.IsModified())
}

func TestStore_WithSQLiteDocument(t *testing.T) {
	dir := t.TempDir()
	doc := NewSQLiteDocument("9.3.0")
	_, err := doc.AddObject("GEOM", "Box_1")
	require.NoError(t, err)

	store := NewStore(filesystem.NewOSFileSystem(), doc, nil)
	require.True(t, store.Save(filepath.Join(dir, "nested", "salome_study")))
	require.FileExists(t, filepath.Join(dir, "nested", "salome_study.hdf"))

	store.Reset()
	require.Equal(t, 0, store.ObjectCount())

	require.True(t, store.Open(filepath.Join(dir, "nested", "salome_study.hdf")))
	require.Equal(t, 1, store.ObjectCount())
}
