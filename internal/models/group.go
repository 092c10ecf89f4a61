package models

import "fmt"

// EntityType names the kind of mesh entity a group collects
type EntityType string

const (
	EntityNode    EntityType = "Node"
	EntityEdge    EntityType = "Edge"
	EntityFace    EntityType = "Face"
	EntityVolume  EntityType = "Volume"
	EntityElement EntityType = "Element"
)

// IsValid checks if the entity type is known
func (e EntityType) IsValid() bool {
	switch e {
	case EntityNode, EntityEdge, EntityFace, EntityVolume, EntityElement:
		return true
	default:
		return false
	}
}

// String returns the string representation of EntityType
func (e EntityType) String() string {
	return string(e)
}

// Group is a named collection of study entries (Salome object identifiers)
type Group struct {
	// ID is stable across renames
	ID string `json:"id"`

	// Name is unique within a groups model
	Name string `json:"name"`

	// EntityType is the kind of entity the group exports
	EntityType EntityType `json:"entity_type"`

	// Entries are study entries such as "0:1:2:3"
	Entries []string `json:"entries"`
}

// HasEntry reports whether entry is part of the group
func (g *Group) HasEntry(entry string) bool {
	for _, e := range g.Entries {
		if e == entry {
			return true
		}
	}
	return false
}

// ParseEntityType parses a string into an EntityType
func ParseEntityType(s string) (EntityType, error) {
	et := EntityType(s)
	if !et.IsValid() {
		return "", fmt.Errorf("invalid entity type: %s (must be Node, Edge, Face, Volume, or Element)", s)
	}
	return et, nil
}
