package cli

import (
	"fmt"

	"github.com/jakoblorz/go-ksp/internal/application"
	"github.com/jakoblorz/go-ksp/internal/extension"
	"github.com/jakoblorz/go-ksp/internal/filesystem"
	"github.com/jakoblorz/go-ksp/internal/tui/pathpicker"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, registry *extension.Registry, prompter pathpicker.Prompter) *cobra.Command {
	a := newApp(fs, registry, prompter)

	rootCmd := &cobra.Command{
		Use:   "ksp",
		Short: "Save and open Salome plugin projects",
		Long: `A CLI tool for managing Salome plugin projects.

A project is a ".ksp" directory bundling the Salome study with the plugin's
metadata: mesh groups and an optional application.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/ksp/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level, overrides the config file")

	// Add subcommands
	rootCmd.AddCommand(NewNewCommand(a))
	rootCmd.AddCommand(NewInfoCommand(a))
	rootCmd.AddCommand(NewGroupCommand(a))
	rootCmd.AddCommand(NewAppCommand(a))
	rootCmd.AddCommand(NewStudyCommand(a))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	registry := application.NewRegistry()

	rootCmd := NewRootCommand(fs, registry, nil)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
