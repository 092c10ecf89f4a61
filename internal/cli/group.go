package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakoblorz/go-ksp/internal/models"
	"github.com/jakoblorz/go-ksp/internal/tui"
	"github.com/spf13/cobra"
)

// GroupCommand handles the group subcommands
type GroupCommand struct {
	app *app
}

// NewGroupCommand creates the group command and its subcommands
func NewGroupCommand(a *app) *cobra.Command {
	cmd := &GroupCommand{app: a}

	groupCmd := &cobra.Command{
		Use:   "group",
		Short: "Manage the mesh groups of a project",
	}

	addCmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Add a group",
		Example: `  ksp group add inlet --type Face --entry 0:1:2:3 -p bridge.ksp`,
		Args:    cobra.ExactArgs(1),
		RunE:    cmd.Add,
	}
	addCmd.Flags().String("type", string(models.EntityNode), "Entity type: Node, Edge, Face, Volume or Element")
	addCmd.Flags().StringArray("entry", nil, "Entry to add to the group (repeatable)")
	addProjectFlag(addCmd)

	extendCmd := &cobra.Command{
		Use:   "extend <name> <entry>...",
		Short: "Add entries to an existing group",
		Args:  cobra.MinimumNArgs(2),
		RunE:  cmd.Extend,
	}
	addProjectFlag(extendCmd)

	removeCmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a group",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Remove,
	}
	addProjectFlag(removeCmd)

	renameCmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a group, keeping its ID",
		Args:  cobra.ExactArgs(2),
		RunE:  cmd.Rename,
	}
	addProjectFlag(renameCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the groups of a project",
		Args:  cobra.NoArgs,
		RunE:  cmd.List,
	}
	addProjectFlag(listCmd)

	groupCmd.AddCommand(addCmd, extendCmd, removeCmd, renameCmd, listCmd)
	return groupCmd
}

// Add executes group add
func (c *GroupCommand) Add(cmd *cobra.Command, args []string) error {
	typeFlag, _ := cmd.Flags().GetString("type")
	entries, _ := cmd.Flags().GetStringArray("entry")

	entityType, err := models.ParseEntityType(typeFlag)
	if err != nil {
		return err
	}

	return c.app.mutate(cmd, projectFlag(cmd), func(s *session) error {
		group, err := s.manager.Groups().Add(args[0], entityType, entries...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added group %s (%s, id %s)\n", group.Name, group.EntityType, group.ID)
		return nil
	})
}

// Extend executes group extend
func (c *GroupCommand) Extend(cmd *cobra.Command, args []string) error {
	return c.app.mutate(cmd, projectFlag(cmd), func(s *session) error {
		return s.manager.Groups().AddEntries(args[0], args[1:]...)
	})
}

// Remove executes group remove
func (c *GroupCommand) Remove(cmd *cobra.Command, args []string) error {
	return c.app.mutate(cmd, projectFlag(cmd), func(s *session) error {
		if !s.manager.Groups().Remove(args[0]) {
			return fmt.Errorf("group %q does not exist", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed group %s\n", args[0])
		return nil
	})
}

// Rename executes group rename
func (c *GroupCommand) Rename(cmd *cobra.Command, args []string) error {
	return c.app.mutate(cmd, projectFlag(cmd), func(s *session) error {
		return s.manager.Groups().Rename(args[0], args[1])
	})
}

// List executes group list
func (c *GroupCommand) List(cmd *cobra.Command, args []string) error {
	s, err := c.app.open(projectFlag(cmd))
	if errors.Is(err, errAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	groups := s.manager.Groups().Groups()
	if len(groups) == 0 {
		fmt.Fprintln(out, tui.SubtleStyle.Render("No groups"))
		return nil
	}

	for _, g := range groups {
		fmt.Fprintf(out, "%-16s %-8s %s\n", g.Name, g.EntityType, strings.Join(g.Entries, " "))
	}
	return nil
}
