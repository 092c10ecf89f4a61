package groups

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jakoblorz/go-ksp/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Model is the plugin-local registry of mesh groups. It is owned by the
// project manager and replaced wholesale when a project is opened.
type Model struct {
	groups   map[string]*models.Group
	modified bool
}

// NewModel creates an empty, unmodified Model
func NewModel() *Model {
	return &Model{
		groups: make(map[string]*models.Group),
	}
}

// Add creates a new group. Names must be unique and non-empty.
func (m *Model) Add(name string, entityType models.EntityType, entries ...string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name must not be empty")
	}
	if _, exists := m.groups[name]; exists {
		return nil, fmt.Errorf("group %q already exists", name)
	}
	if !entityType.IsValid() {
		return nil, fmt.Errorf("group %q: invalid entity type %q", name, entityType)
	}

	id, err := gonanoid.Generate(idAlphabet, 8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate group ID: %w", err)
	}

	group := &models.Group{
		ID:         id,
		Name:       name,
		EntityType: entityType,
		Entries:    dedupe(entries),
	}
	m.groups[name] = group
	m.modified = true

	return group, nil
}

// Remove deletes the group with the given name
func (m *Model) Remove(name string) bool {
	if _, exists := m.groups[name]; !exists {
		return false
	}
	delete(m.groups, name)
	m.modified = true
	return true
}

// Rename changes a group's name while keeping its ID
func (m *Model) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	group, exists := m.groups[oldName]
	if !exists {
		return fmt.Errorf("group %q does not exist", oldName)
	}
	if newName == "" {
		return fmt.Errorf("group name must not be empty")
	}
	if newName == oldName {
		return nil
	}
	if _, taken := m.groups[newName]; taken {
		return fmt.Errorf("group %q already exists", newName)
	}

	delete(m.groups, oldName)
	group.Name = newName
	m.groups[newName] = group
	m.modified = true
	return nil
}

// AddEntries appends entries to an existing group, skipping duplicates
func (m *Model) AddEntries(name string, entries ...string) error {
	group, exists := m.groups[name]
	if !exists {
		return fmt.Errorf("group %q does not exist", name)
	}

	before := len(group.Entries)
	group.Entries = dedupe(append(group.Entries, entries...))
	if len(group.Entries) != before {
		m.modified = true
	}
	return nil
}

// Get returns the group with the given name
func (m *Model) Get(name string) (*models.Group, bool) {
	group, exists := m.groups[name]
	return group, exists
}

// Groups returns all groups sorted by name
func (m *Model) Groups() []*models.Group {
	out := make([]*models.Group, 0, len(m.groups))
	for _, g := range m.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of groups
func (m *Model) Len() int {
	return len(m.groups)
}

// IsModified reports whether the model changed since it was created,
// deserialized or last marked saved
func (m *Model) IsModified() bool {
	return m.modified
}

// MarkSaved clears the modified flag
func (m *Model) MarkSaved() {
	m.modified = false
}

// Serialize encodes the groups as a JSON array sorted by name
func (m *Model) Serialize() (json.RawMessage, error) {
	data, err := json.Marshal(m.Groups())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize groups: %w", err)
	}
	return data, nil
}

// Deserialize replaces the model content with data. An empty or null
// payload yields an empty model.
func (m *Model) Deserialize(data json.RawMessage) error {
	loaded := make(map[string]*models.Group)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) != 0 && !bytes.Equal(trimmed, []byte("null")) {
		var list []*models.Group
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("failed to deserialize groups: %w", err)
		}

		for _, g := range list {
			if g == nil || strings.TrimSpace(g.Name) == "" {
				return fmt.Errorf("failed to deserialize groups: group without name")
			}
			if !g.EntityType.IsValid() {
				return fmt.Errorf("failed to deserialize groups: group %q has unknown entity type %q", g.Name, g.EntityType)
			}
			if _, dup := loaded[g.Name]; dup {
				return fmt.Errorf("failed to deserialize groups: duplicate group %q", g.Name)
			}
			if g.Entries == nil {
				g.Entries = []string{}
			}
			loaded[g.Name] = g
		}
	}

	m.groups = loaded
	m.modified = false
	return nil
}

func dedupe(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
