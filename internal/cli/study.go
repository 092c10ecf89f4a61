package cli

import (
	"errors"
	"fmt"

	"github.com/jakoblorz/go-ksp/internal/tui"
	"github.com/spf13/cobra"
)

// StudyCommand handles the study subcommands
type StudyCommand struct {
	app *app
}

// NewStudyCommand creates the study command and its subcommands
func NewStudyCommand(a *app) *cobra.Command {
	cmd := &StudyCommand{app: a}

	studyCmd := &cobra.Command{
		Use:   "study",
		Short: "Inspect and edit the study of a project",
	}

	addCmd := &cobra.Command{
		Use:     "add <component> <name>",
		Short:   "Publish a new object in the study",
		Example: `  ksp study add GEOM Box_1 -p bridge.ksp`,
		Args:    cobra.ExactArgs(2),
		RunE:    cmd.Add,
	}
	addProjectFlag(addCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the objects of the study",
		Args:  cobra.NoArgs,
		RunE:  cmd.List,
	}
	addProjectFlag(listCmd)

	studyCmd.AddCommand(addCmd, listCmd)
	return studyCmd
}

// Add executes study add
func (c *StudyCommand) Add(cmd *cobra.Command, args []string) error {
	return c.app.mutate(cmd, projectFlag(cmd), func(s *session) error {
		entry, err := s.doc.AddObject(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s/%s as %s\n", args[0], args[1], entry)
		return nil
	})
}

// List executes study list
func (c *StudyCommand) List(cmd *cobra.Command, args []string) error {
	s, err := c.app.open(projectFlag(cmd))
	if errors.Is(err, errAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	objects := s.doc.Objects()
	if len(objects) == 0 {
		fmt.Fprintln(out, tui.SubtleStyle.Render("Study is empty"))
		return nil
	}

	for _, o := range objects {
		fmt.Fprintf(out, "%-10s %-8s %s\n", o.Entry, o.Component, o.Name)
	}
	return nil
}
