// Package extension defines the contract for optional project add-ons
// ("applications") and the registry that rebuilds them when a project is
// opened.
package extension

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownModule is returned when no factory is registered for a module id
var ErrUnknownModule = errors.New("unknown extension module")

// Extension is an add-on attached to a project. It owns its serialized form.
type Extension interface {
	// ModuleID names the factory that can rebuild this extension
	ModuleID() string

	// Serialize returns whether serializing succeeded and the payload
	Serialize() (bool, json.RawMessage)

	// Deserialize restores state from a payload produced by Serialize
	Deserialize(data json.RawMessage) bool

	// IsModified reports unsaved changes
	IsModified() bool
}

// Factory builds a fresh extension instance
type Factory func() Extension

// Registry maps module ids to factories. It is populated explicitly at
// process start; lookups are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry constructs an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register stores factory under id, rejecting duplicates
func (r *Registry) Register(id string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("extension: factory for %q is nil", id)
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("extension: module id must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("extension: module %q already registered", id)
	}
	r.factories[id] = factory
	return nil
}

// MustRegister is like Register but panics on error
func (r *Registry) MustRegister(id string, factory Factory) {
	if err := r.Register(id, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered for id
func (r *Registry) Lookup(id string) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[id]
	return factory, ok
}

// Create builds a new extension for id
func (r *Registry) Create(id string) (Extension, error) {
	factory, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, id)
	}
	ext := factory()
	if ext == nil {
		return nil, fmt.Errorf("extension: factory for %q returned nil", id)
	}
	return ext, nil
}

// Names returns registered module ids sorted alphabetically
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for id := range r.factories {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}
