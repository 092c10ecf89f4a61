package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a simple yes/no confirmation
type ConfirmModel struct {
	message   string
	cursor    int
	confirmed bool
	done      bool
}

// NewConfirm creates a confirmation defaulting to "No"
func NewConfirm(message string) ConfirmModel {
	return ConfirmModel{
		message: message,
		cursor:  1,
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "h":
		m.cursor = 0
	case "right", "l":
		m.cursor = 1
	case "enter", " ":
		m.confirmed = m.cursor == 0
		m.done = true
		return m, tea.Quit
	case "y":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "ctrl+c", "esc":
		m.confirmed = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}

	yes, no := "  Yes", "  No"
	if m.cursor == 0 {
		yes = SelectedStyle.Render("> Yes")
	} else {
		no = SelectedStyle.Render("> No")
	}

	return fmt.Sprintf("%s\n\n%s  %s\n%s",
		m.message,
		yes, no,
		HelpStyle.Render("←→ navigate • enter confirm • y/n quick select"))
}

// IsConfirmed returns whether the user answered yes
func (m ConfirmModel) IsConfirmed() bool {
	return m.confirmed
}

// IsDone returns whether the user answered
func (m ConfirmModel) IsDone() bool {
	return m.done
}

// Confirm asks a yes/no question on the terminal
func Confirm(message string) (bool, error) {
	final, err := tea.NewProgram(NewConfirm(message)).Run()
	if err != nil {
		return false, fmt.Errorf("failed to run confirmation: %w", err)
	}
	return final.(ConfirmModel).IsConfirmed(), nil
}
