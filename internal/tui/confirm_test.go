package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		confirmed bool
		done      bool
	}{
		{"enter keeps default no", []string{"enter"}, false, true},
		{"left then enter", []string{"left", "enter"}, true, true},
		{"left right enter", []string{"left", "right", "enter"}, false, true},
		{"quick yes", []string{"y"}, true, true},
		{"quick no", []string{"left", "n"}, false, true},
		{"escape", []string{"left", "esc"}, false, true},
		{"navigation only", []string{"left"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewConfirm("Overwrite?"), tt.keys...).(ConfirmModel)
			require.Equal(t, tt.confirmed, m.IsConfirmed())
			require.Equal(t, tt.done, m.IsDone())
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	m := NewConfirm("Overwrite project?")
	require.Contains(t, m.View(), "Overwrite project?")
	require.Contains(t, m.View(), "> No")

	m = press(m, "left").(ConfirmModel)
	require.Contains(t, m.View(), "> Yes")

	m = press(m, "enter").(ConfirmModel)
	require.Empty(t, m.View())
}
