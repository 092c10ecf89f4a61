package pathpicker

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-ksp/internal/tui"
)

// HuhPrompter asks for a path with a single-input huh form
type HuhPrompter struct {
	theme *huh.Theme
}

// NewHuhPrompter creates a prompter using the ksp theme
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{theme: tui.NewHuhTheme()}
}

func (p *HuhPrompter) Prompt(title, start string) (string, error) {
	value := ""
	if start != "" {
		value = start + string(filepath.Separator)
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Input.Submit.SetHelp("enter", "select")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Value(&value).
				Placeholder("path/to/project.ksp").
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		).
			Title(title).
			Description("Project folders end with \".ksp\"."),
	).
		WithTheme(p.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return "", err
	}

	return value, nil
}
