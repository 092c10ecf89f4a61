package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// settable is implemented by applications with editable settings
type settable interface {
	Set(key, value string) error
}

// AppCommand handles the app subcommands
type AppCommand struct {
	app *app
}

// NewAppCommand creates the app command and its subcommands
func NewAppCommand(a *app) *cobra.Command {
	cmd := &AppCommand{app: a}

	appCmd := &cobra.Command{
		Use:   "app",
		Short: "Manage the application attached to a project",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the available applications",
		Args:  cobra.NoArgs,
		RunE:  cmd.List,
	}

	attachCmd := &cobra.Command{
		Use:   "attach <module>",
		Short: "Attach a new application, replacing the current one",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Attach,
	}
	addProjectFlag(attachCmd)

	detachCmd := &cobra.Command{
		Use:   "detach",
		Short: "Remove the attached application",
		Args:  cobra.NoArgs,
		RunE:  cmd.Detach,
	}
	addProjectFlag(detachCmd)

	setCmd := &cobra.Command{
		Use:     "set <key=value>...",
		Short:   "Change settings of the attached application",
		Example: `  ksp app set analysis_type=dynamic time_step=0.1 end_time=10 -p bridge.ksp`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    cmd.Set,
	}
	addProjectFlag(setCmd)

	appCmd.AddCommand(listCmd, attachCmd, detachCmd, setCmd)
	return appCmd
}

// List executes app list
func (c *AppCommand) List(cmd *cobra.Command, args []string) error {
	for _, name := range c.app.registry.Names() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

// Attach executes app attach
func (c *AppCommand) Attach(cmd *cobra.Command, args []string) error {
	ext, err := c.app.registry.Create(args[0])
	if err != nil {
		return err
	}

	return c.app.mutate(cmd, projectFlag(cmd), func(s *session) error {
		s.manager.AttachExtension(ext)
		s.changed = true
		fmt.Fprintf(cmd.OutOrStdout(), "Attached %s\n", ext.ModuleID())
		return nil
	})
}

// Detach executes app detach
func (c *AppCommand) Detach(cmd *cobra.Command, args []string) error {
	return c.app.mutate(cmd, projectFlag(cmd), func(s *session) error {
		if s.manager.Extension() == nil {
			return nil
		}
		s.manager.DetachExtension()
		s.changed = true
		return nil
	})
}

// Set executes app set
func (c *AppCommand) Set(cmd *cobra.Command, args []string) error {
	type assignment struct{ key, value string }

	assignments := make([]assignment, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("invalid setting %q (expected key=value)", arg)
		}
		assignments = append(assignments, assignment{strings.TrimSpace(key), value})
	}

	return c.app.mutate(cmd, projectFlag(cmd), func(s *session) error {
		ext := s.manager.Extension()
		if ext == nil {
			return fmt.Errorf("no application attached to %s", s.dir)
		}
		target, ok := ext.(settable)
		if !ok {
			return fmt.Errorf("application %s has no editable settings", ext.ModuleID())
		}
		for _, a := range assignments {
			if err := target.Set(a.key, a.value); err != nil {
				return err
			}
		}
		return nil
	})
}
