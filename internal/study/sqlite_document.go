package study

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const formatVersion = "ksp-study/1"

const schema = `
CREATE TABLE study_properties (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE components (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE
);
CREATE TABLE objects (
	entry     TEXT PRIMARY KEY,
	component TEXT NOT NULL REFERENCES components(name),
	name      TEXT NOT NULL,
	position  INTEGER NOT NULL
);
`

var _ Document = (*SQLiteDocument)(nil)

// Object is a named item in a study component (geometry, mesh, ...)
type Object struct {
	Entry     string `json:"entry"`
	Component string `json:"component"`
	Name      string `json:"name"`
}

// SQLiteDocument is a local stand-in for the host study. It keeps the object
// tree in memory and persists it as a single-file SQLite database.
type SQLiteDocument struct {
	version    string
	components []string
	objects    []Object
	modified   bool
}

// NewSQLiteDocument creates an empty document reporting hostVersion
func NewSQLiteDocument(hostVersion string) *SQLiteDocument {
	return &SQLiteDocument{version: hostVersion}
}

// AddObject publishes a new object under component and returns its entry
func (d *SQLiteDocument) AddObject(component, name string) (string, error) {
	component = strings.TrimSpace(component)
	name = strings.TrimSpace(name)
	if component == "" || name == "" {
		return "", fmt.Errorf("component and object name are required")
	}

	tag := d.componentTag(component)
	count := 0
	for _, o := range d.objects {
		if o.Component == component {
			count++
		}
	}

	entry := fmt.Sprintf("0:1:%d:%d", tag, count+1)
	d.objects = append(d.objects, Object{Entry: entry, Component: component, Name: name})
	d.modified = true
	return entry, nil
}

func (d *SQLiteDocument) componentTag(component string) int {
	for i, c := range d.components {
		if c == component {
			return i + 1
		}
	}
	d.components = append(d.components, component)
	return len(d.components)
}

// Objects returns all objects in publication order
func (d *SQLiteDocument) Objects() []Object {
	out := make([]Object, len(d.objects))
	copy(out, d.objects)
	return out
}

// FindObject returns the object published under entry
func (d *SQLiteDocument) FindObject(entry string) (Object, bool) {
	for _, o := range d.objects {
		if o.Entry == entry {
			return o, true
		}
	}
	return Object{}, false
}

// SaveAs writes the document to path, replacing any existing file
func (d *SQLiteDocument) SaveAs(path string) (bool, error) {
	tmp := path + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("remove stale temp file: %w", err)
	}

	if err := d.writeDatabase(tmp); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("replace study file: %w", err)
	}

	d.modified = false
	return true, nil
}

func (d *SQLiteDocument) writeDatabase(path string) error {
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	props := map[string]string{
		"format":       formatVersion,
		"host_version": d.version,
	}
	for k, v := range props {
		if _, err := tx.Exec(`INSERT INTO study_properties (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("write property %s: %w", k, err)
		}
	}

	for i, c := range d.components {
		if _, err := tx.Exec(`INSERT INTO components (position, name) VALUES (?, ?)`, i+1, c); err != nil {
			return fmt.Errorf("write component %s: %w", c, err)
		}
	}

	for i, o := range d.objects {
		if _, err := tx.Exec(`INSERT INTO objects (entry, component, name, position) VALUES (?, ?, ?, ?)`,
			o.Entry, o.Component, o.Name, i); err != nil {
			return fmt.Errorf("write object %s: %w", o.Entry, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit study: %w", err)
	}
	return nil
}

// Open replaces the document content with the study stored at path
func (d *SQLiteDocument) Open(path string) (bool, error) {
	// sqlite would silently create a missing database
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("stat study file: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return false, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	var format string
	if err := db.QueryRow(`SELECT value FROM study_properties WHERE key = 'format'`).Scan(&format); err != nil {
		return false, fmt.Errorf("read study format: %w", err)
	}
	if format != formatVersion {
		return false, fmt.Errorf("unsupported study format %q", format)
	}

	components, err := readComponents(db)
	if err != nil {
		return false, err
	}
	objects, err := readObjects(db)
	if err != nil {
		return false, err
	}

	d.components = components
	d.objects = objects
	d.modified = false
	return true, nil
}

func readComponents(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM components ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("read components: %w", err)
	}
	defer rows.Close()

	var components []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		components = append(components, name)
	}
	return components, rows.Err()
}

func readObjects(db *sql.DB) ([]Object, error) {
	rows, err := db.Query(`SELECT entry, component, name FROM objects ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("read objects: %w", err)
	}
	defer rows.Close()

	var objects []Object
	for rows.Next() {
		var o Object
		if err := rows.Scan(&o.Entry, &o.Component, &o.Name); err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}
		objects = append(objects, o)
	}
	return objects, rows.Err()
}

// Clear drops every object and component
func (d *SQLiteDocument) Clear() {
	d.components = nil
	d.objects = nil
}

// Init starts a fresh, unmodified document
func (d *SQLiteDocument) Init() {
	d.modified = false
}

func (d *SQLiteDocument) IsModified() bool {
	return d.modified
}

func (d *SQLiteDocument) ObjectCount() int {
	return len(d.objects)
}

func (d *SQLiteDocument) Version() string {
	return d.version
}
