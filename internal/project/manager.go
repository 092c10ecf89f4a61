// Package project saves and opens projects: a directory bundling the host
// study with the plugin's own metadata sidecar.
package project

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jakoblorz/go-ksp/internal/extension"
	"github.com/jakoblorz/go-ksp/internal/filesystem"
	"github.com/jakoblorz/go-ksp/internal/groups"
	"github.com/jakoblorz/go-ksp/internal/models"
	"github.com/jakoblorz/go-ksp/internal/paths"
	"go.uber.org/zap"
)

const (
	// Suffix is forced onto every project directory on save
	Suffix = ".ksp"

	// StudyFileName is the host study inside a project directory
	StudyFileName = "salome_study.hdf"

	// PluginDataFileName is the metadata sidecar inside a project directory
	PluginDataFileName = "plugin_data.json"
)

// HostStore is the host document store. Save and Open report success as a
// bool and never fail hard.
type HostStore interface {
	Save(path string) bool
	Open(path string) bool
	Reset()
	IsModified() bool
	ObjectCount() int
}

type versioner interface {
	Version() string
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock overrides the time source used for creation timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithPluginVersion overrides the plugin version written on save
func WithPluginVersion(v string) Option {
	return func(m *Manager) {
		m.pluginVersion = v
	}
}

// WithHostVersion overrides the host version written on save. By default
// it is taken from the host store when the store reports one.
func WithHostVersion(v string) Option {
	return func(m *Manager) {
		m.hostVersion = v
	}
}

// Manager owns the in-memory project state: a groups model and an optional
// extension. It is not safe for concurrent use; callers serialize Save and
// Open.
type Manager struct {
	fs       filesystem.FileSystem
	host     HostStore
	registry *extension.Registry
	log      *zap.Logger
	now      func() time.Time

	pluginVersion string
	hostVersion   string

	groups    *groups.Model
	extension extension.Extension
	general   models.General
}

// NewManager creates a manager with an empty groups model and no extension
func NewManager(fs filesystem.FileSystem, host HostStore, registry *extension.Registry, opts ...Option) *Manager {
	m := &Manager{
		fs:            fs,
		host:          host,
		registry:      registry,
		log:           zap.NewNop(),
		now:           time.Now,
		pluginVersion: models.PluginVersion,
	}
	if v, ok := host.(versioner); ok {
		m.hostVersion = v.Version()
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.Named("project")

	m.initializeMembers()
	return m
}

func (m *Manager) initializeMembers() {
	m.groups = groups.NewModel()
	m.extension = nil
	m.general = models.General{}
}

// Reset starts a new, empty project: the study is cleared and all plugin
// state is discarded
func (m *Manager) Reset() {
	m.log.Debug("Resetting project")
	m.host.Reset()
	m.initializeMembers()
}

// General returns the metadata written by the last Save or read by the
// last Open
func (m *Manager) General() models.General {
	return m.general
}

// Groups returns the current groups model
func (m *Manager) Groups() *groups.Model {
	return m.groups
}

// Extension returns the attached extension or nil
func (m *Manager) Extension() extension.Extension {
	return m.extension
}

// AttachExtension replaces the attached extension
func (m *Manager) AttachExtension(ext extension.Extension) {
	m.extension = ext
}

// DetachExtension removes the attached extension
func (m *Manager) DetachExtension() {
	m.extension = nil
}

// Save writes the project to path, forcing the .ksp suffix. The returned
// bool is false when the study or the extension could not be saved; the
// sidecar is written regardless and the groups stay marked as unsaved.
// Errors are returned for an invalid path and when the sidecar cannot be
// written.
func (m *Manager) Save(path string) (bool, error) {
	if err := paths.Check(path); err != nil {
		return false, newError(KindPathInvalid, path, err)
	}

	dir := paths.WithSuffix(path, Suffix)
	m.log.Debug("Saving project", zap.String("path", dir))

	if m.fs.IsDir(dir) {
		m.log.Debug("Project directory exists already and will be overwritten", zap.String("path", dir))
	} else if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create project directory %s: %w", dir, err)
	}

	saveSuccessful := m.host.Save(filepath.Join(dir, StudyFileName))
	if !saveSuccessful {
		m.log.Error("Saving the study failed", zap.String("path", dir))
	}

	groupsData, err := m.groups.Serialize()
	if err != nil {
		return false, err
	}

	doc := models.PluginData{
		General: models.General{
			PluginVersion:   m.pluginVersion,
			SalomeVersion:   m.hostVersion,
			CreationTime:    m.now().Format(time.ANSIC),
			OperatingSystem: runtime.GOOS,
		},
		Groups: groupsData,
	}

	if m.extension != nil {
		ok, payload := m.extension.Serialize()
		if !ok {
			m.log.Error("Serializing the application failed", zap.String("module", m.extension.ModuleID()))
		}
		if len(payload) != 0 && !json.Valid(payload) {
			m.log.Error("Application data is not valid JSON and is dropped", zap.String("module", m.extension.ModuleID()))
			payload = nil
			ok = false
		}
		saveSuccessful = saveSuccessful && ok

		doc.Application = &models.ApplicationData{
			Module: m.extension.ModuleID(),
			Data:   payloadOrNull(payload),
		}
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return false, fmt.Errorf("failed to encode %s: %w", PluginDataFileName, err)
	}

	sidecar := filepath.Join(dir, PluginDataFileName)
	if err := m.fs.WriteFile(sidecar, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", sidecar, err)
	}
	m.general = doc.General

	if saveSuccessful {
		m.groups.MarkSaved()
		m.log.Info("Project was saved", zap.String("path", dir))
	} else {
		m.log.Error("Project was saved with errors", zap.String("path", dir))
	}

	return saveSuccessful, nil
}

// Open replaces the current state with the project stored in path. path
// must be the exact project directory. Both project files are checked
// before any state is discarded.
func (m *Manager) Open(path string) (bool, error) {
	if err := paths.Check(path); err != nil {
		return false, newError(KindPathInvalid, path, err)
	}

	dir := filepath.Clean(path)
	if !m.fs.IsDir(dir) {
		return false, newError(KindNotADirectory, dir, nil)
	}

	studyPath := filepath.Join(dir, StudyFileName)
	if !m.fs.IsFile(studyPath) {
		return false, newError(KindMissingFile, studyPath, nil)
	}
	sidecarPath := filepath.Join(dir, PluginDataFileName)
	if !m.fs.IsFile(sidecarPath) {
		return false, newError(KindMissingFile, sidecarPath, nil)
	}

	m.log.Debug("Opening project", zap.String("path", dir))
	m.initializeMembers()

	openSuccessful := m.host.Open(studyPath)
	if !openSuccessful {
		m.log.Error("Opening the study failed", zap.String("path", studyPath))
	}

	raw, err := m.fs.ReadFile(sidecarPath)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", sidecarPath, err)
	}

	var doc models.PluginData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", sidecarPath, err)
	}

	m.general = doc.General
	m.logGeneral(doc.General)

	if err := m.groups.Deserialize(doc.Groups); err != nil {
		return false, err
	}

	if doc.HasApplication() {
		module := doc.Application.Module
		ext, err := m.registry.Create(module)
		if err != nil {
			return false, newError(KindUnknownExtension, module, err)
		}
		m.extension = ext

		if !ext.Deserialize(doc.Application.Data) {
			m.log.Error("Deserializing the application failed", zap.String("module", module))
			openSuccessful = false
		}
	}

	if openSuccessful {
		m.log.Info("Project was opened", zap.String("path", dir))
	} else {
		m.log.Error("Project was opened with errors", zap.String("path", dir))
	}

	return openSuccessful, nil
}

// HasUnsavedChanges reports whether the study, the groups or the extension
// changed since the last save or open. An empty study never counts.
func (m *Manager) HasUnsavedChanges() bool {
	if m.host.IsModified() && m.host.ObjectCount() > 0 {
		return true
	}
	if m.groups.IsModified() {
		return true
	}
	return m.extension != nil && m.extension.IsModified()
}

// logGeneral records who wrote the project. Versions are informational
// only and never block loading.
func (m *Manager) logGeneral(g models.General) {
	m.log.Info("Project was written by plugin version", zap.String("version", g.PluginVersion))
	m.log.Info("Project was written by Salome version", zap.String("version", g.SalomeVersion))
	m.log.Info("Project was created", zap.String("time", g.CreationTime))
	m.log.Debug("Project was created on operating system", zap.String("os", g.OperatingSystem))

	if models.IsNewer(g.PluginVersion, m.pluginVersion) {
		m.log.Warn("Project was written by a newer plugin version",
			zap.String("recorded", g.PluginVersion),
			zap.String("running", m.pluginVersion))
	}
}

func payloadOrNull(p json.RawMessage) json.RawMessage {
	if len(p) == 0 {
		return json.RawMessage("null")
	}
	return p
}
