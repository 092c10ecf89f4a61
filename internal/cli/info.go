package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// InfoCommand handles the info command
type InfoCommand struct {
	app *app
}

// NewInfoCommand creates a new info command
func NewInfoCommand(a *app) *cobra.Command {
	cmd := &InfoCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "info [path]",
		Short: "Show what a project contains",
		Long: `Opens a project and prints its metadata, groups, application and study
objects. The project is not modified.`,
		Example: `  # Human readable summary
  ksp info bridge.ksp

  # Output JSON for scripting
  ksp info bridge.ksp --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the info command
func (c *InfoCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (expected text or json)", format)
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	s, err := c.app.open(path)
	if errors.Is(err, errAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	view, err := buildInfoView(s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal project info: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	text, err := RenderInfo(view)
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}

func buildInfoView(s *session) (*InfoView, error) {
	view := &InfoView{
		Path:    s.dir,
		General: s.manager.General(),
		Groups:  s.manager.Groups().Groups(),
		Objects: s.doc.Objects(),
	}

	if ext := s.manager.Extension(); ext != nil {
		_, payload := ext.Serialize()
		settings := map[string]any{}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &settings); err != nil {
				return nil, fmt.Errorf("failed to decode application settings: %w", err)
			}
		}
		view.Application = &ApplicationView{Module: ext.ModuleID(), Settings: settings}
	}

	return view, nil
}
