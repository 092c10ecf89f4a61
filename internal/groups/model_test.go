package groups

import (
	"encoding/json"
	"testing"

	"github.com/jakoblorz/go-ksp/internal/models"
	"github.com/stretchr/testify/require"
)

func TestModel_Add(t *testing.T) {
	m := NewModel()
	require.False(t, m.IsModified())

	g, err := m.Add("inlet", models.EntityFace, "0:1:2:3", "0:1:2:4", "0:1:2:3")
	require.NoError(t, err)
	require.Len(t, g.ID, 8)
	require.Equal(t, []string{"0:1:2:3", "0:1:2:4"}, g.Entries)
	require.True(t, m.IsModified())

	_, err = m.Add("inlet", models.EntityFace)
	require.ErrorContains(t, err, "already exists")

	_, err = m.Add("  ", models.EntityFace)
	require.ErrorContains(t, err, "must not be empty")

	_, err = m.Add("outlet", models.EntityType("Blob"))
	require.ErrorContains(t, err, "invalid entity type")
}

func TestModel_RenameKeepsID(t *testing.T) {
	m := NewModel()
	g, err := m.Add("wall", models.EntityFace)
	require.NoError(t, err)
	id := g.ID

	require.NoError(t, m.Rename("wall", "walls"))
	_, exists := m.Get("wall")
	require.False(t, exists)

	renamed, exists := m.Get("walls")
	require.True(t, exists)
	require.Equal(t, id, renamed.ID)

	_, err = m.Add("inlet", models.EntityFace)
	require.NoError(t, err)
	require.Error(t, m.Rename("walls", "inlet"))
	require.Error(t, m.Rename("missing", "x"))
}

func TestModel_RemoveAndEntries(t *testing.T) {
	m := NewModel()
	_, err := m.Add("support", models.EntityNode, "0:1:1:1")
	require.NoError(t, err)
	m.MarkSaved()

	require.NoError(t, m.AddEntries("support", "0:1:1:1"))
	require.False(t, m.IsModified(), "adding a known entry is not a change")

	require.NoError(t, m.AddEntries("support", "0:1:1:2"))
	require.True(t, m.IsModified())

	require.True(t, m.Remove("support"))
	require.False(t, m.Remove("support"))
	require.Equal(t, 0, m.Len())
}

func TestModel_SerializeRoundTrip(t *testing.T) {
	m := NewModel()
	_, err := m.Add("outlet", models.EntityFace, "0:1:2:7")
	require.NoError(t, err)
	_, err = m.Add("domain", models.EntityVolume)
	require.NoError(t, err)
	require.NoError(t, m.Rename("domain", "fluid"))

	data, err := m.Serialize()
	require.NoError(t, err)

	restored := NewModel()
	require.NoError(t, restored.Deserialize(data))
	require.False(t, restored.IsModified())
	require.Equal(t, 2, restored.Len())

	again, err := restored.Serialize()
	require.NoError(t, err)
	require.JSONEq(t, string(data), string(again))

	names := []string{}
	for _, g := range restored.Groups() {
		names = append(names, g.Name)
	}
	require.Equal(t, []string{"fluid", "outlet"}, names)
}

func TestModel_Deserialize(t *testing.T) {
	t.Run("null and empty give an empty model", func(t *testing.T) {
		for _, payload := range []string{"", "null", "  ", "[]"} {
			m := NewModel()
			_, err := m.Add("stale", models.EntityNode)
			require.NoError(t, err)

			require.NoError(t, m.Deserialize(json.RawMessage(payload)))
			require.Equal(t, 0, m.Len(), "payload %q", payload)
			require.False(t, m.IsModified())
		}
	})

	t.Run("malformed payload keeps content", func(t *testing.T) {
		m := NewModel()
		_, err := m.Add("keep", models.EntityNode)
		require.NoError(t, err)

		require.Error(t, m.Deserialize(json.RawMessage(`{"not":"a list"}`)))
		_, exists := m.Get("keep")
		require.True(t, exists)
	})

	t.Run("duplicate names rejected", func(t *testing.T) {
		m := NewModel()
		err := m.Deserialize(json.RawMessage(`[{"name":"a","entity_type":"Node"},{"name":"a","entity_type":"Node"}]`))
		require.ErrorContains(t, err, "duplicate group")
	})

	t.Run("unknown entity type rejected", func(t *testing.T) {
		for _, payload := range []string{
			`[{"name":"a","entity_type":"Bogus","entries":[]}]`,
			`[{"name":"a","entries":["0:1:2:3"]}]`,
		} {
			m := NewModel()
			_, err := m.Add("keep", models.EntityNode)
			require.NoError(t, err)

			err = m.Deserialize(json.RawMessage(payload))
			require.ErrorContains(t, err, "unknown entity type", "payload %s", payload)
			_, exists := m.Get("keep")
			require.True(t, exists)
			require.Equal(t, 1, m.Len())
		}
	})
}
