package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructuralMechanics_SerializeRoundTrip(t *testing.T) {
	app := NewStructuralMechanics()
	require.False(t, app.IsModified())

	require.NoError(t, app.Set("analysis_type", "dynamic"))
	require.NoError(t, app.Set("time_step", "0.01"))
	require.NoError(t, app.Set("end_time", "2.5"))
	require.True(t, app.IsModified())

	ok, data := app.Serialize()
	require.True(t, ok)
	require.False(t, app.IsModified())

	restored := NewStructuralMechanics()
	require.True(t, restored.Deserialize(data))
	require.Equal(t, app.Settings(), restored.Settings())
}

func TestStructuralMechanics_InvalidSettings(t *testing.T) {
	app := NewStructuralMechanics()
	require.NoError(t, app.Set("time_step", "5"))

	ok, data := app.Serialize()
	require.False(t, ok, "end time below time step must not serialize cleanly")
	require.NotEmpty(t, data, "payload is kept even when invalid")
	require.True(t, app.IsModified())

	restored := NewStructuralMechanics()
	require.False(t, restored.Deserialize(data))
	require.Equal(t, 5.0, restored.Settings().TimeStep)
}

func TestStructuralMechanics_Set(t *testing.T) {
	app := NewStructuralMechanics()
	require.ErrorContains(t, app.Set("mesh_size", "1"), "unknown setting")
	require.Error(t, app.Set("end_time", "soon"))

	require.NoError(t, app.Set("solver_type", "linear"))
	require.False(t, app.IsModified(), "setting the current value is not a change")
}

func TestStructuralMechanics_DeserializeMalformed(t *testing.T) {
	app := NewStructuralMechanics()
	require.False(t, app.Deserialize(json.RawMessage(`[1,2,3]`)))
	require.Equal(t, NewStructuralMechanics().Settings(), app.Settings())
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	require.Equal(t, []string{StructuralMechanicsModule}, reg.Names())

	ext, err := reg.Create(StructuralMechanicsModule)
	require.NoError(t, err)
	require.Equal(t, StructuralMechanicsModule, ext.ModuleID())

	require.Error(t, Register(reg), "built-ins cannot be registered twice")
}
