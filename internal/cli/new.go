package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-ksp/internal/paths"
	"github.com/jakoblorz/go-ksp/internal/project"
	"github.com/jakoblorz/go-ksp/internal/tui"
	"github.com/spf13/cobra"
)

// NewCommand handles the new command
type NewCommand struct {
	app *app
}

// NewNewCommand creates a new new command
func NewNewCommand(a *app) *cobra.Command {
	cmd := &NewCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "new [path]",
		Short: "Create an empty project",
		Long: `Saves an empty project (empty study, no groups, no application).

The ".ksp" suffix is added when missing. Without a path you are asked for one.`,
		Example: `  ksp new bridge
  ksp new /data/projects/bridge.ksp --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Bool("force", false, "Overwrite an existing project")

	return cobraCmd
}

// Run executes the new command
func (c *NewCommand) Run(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		picked, err := c.app.picker.SavePath()
		if err != nil {
			return err
		}
		if picked == "" {
			return nil
		}
		path = picked
	}

	if err := paths.Check(path); err != nil {
		return err
	}

	dir := paths.WithSuffix(path, project.Suffix)
	if !force && c.app.fs.Exists(filepath.Join(dir, project.PluginDataFileName)) {
		if !c.app.interactive {
			return fmt.Errorf("project %s already exists, use --force to overwrite it", dir)
		}
		overwrite, err := c.app.confirm(fmt.Sprintf("Project %s already exists. Overwrite it?", dir))
		if err != nil {
			return err
		}
		if !overwrite {
			return nil
		}
	}

	s := c.app.newSession()
	s.manager.Reset()
	if err := c.app.save(s, dir); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("✓ Created project "+dir))
	return nil
}
