package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jakoblorz/go-ksp/internal/config"
	"github.com/jakoblorz/go-ksp/internal/extension"
	"github.com/jakoblorz/go-ksp/internal/filesystem"
	"github.com/jakoblorz/go-ksp/internal/logging"
	"github.com/jakoblorz/go-ksp/internal/paths"
	"github.com/jakoblorz/go-ksp/internal/project"
	"github.com/jakoblorz/go-ksp/internal/study"
	"github.com/jakoblorz/go-ksp/internal/tui"
	"github.com/jakoblorz/go-ksp/internal/tui/pathpicker"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// errAborted is returned when the user cancels the path picker
var errAborted = errors.New("aborted by user")

// app holds what every command needs once flags are parsed
type app struct {
	fs       filesystem.FileSystem
	registry *extension.Registry
	prompter pathpicker.Prompter
	confirm  func(message string) (bool, error)
	now      func() time.Time

	// interactive is set when stdin is a terminal
	interactive bool

	cfg    *config.Config
	log    *zap.Logger
	picker *pathpicker.Handler
}

func newApp(fs filesystem.FileSystem, registry *extension.Registry, prompter pathpicker.Prompter) *app {
	return &app{
		fs:       fs,
		registry: registry,
		prompter: prompter,
		confirm:  tui.Confirm,
		log:      zap.NewNop(),
	}
}

// setup loads the configuration and builds the logger and path picker
func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(a.fs, configPath)
	if err != nil {
		return err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log, err := logging.NewWithSink(cfg.Log, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	start := cfg.Projects.Directory
	if start == "" {
		if start, err = a.fs.Getwd(); err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	a.cfg = cfg
	a.log = log
	a.interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	a.picker = pathpicker.NewHandler(a.prompter, start, log)
	return nil
}

// session is one project loaded into memory together with its study
type session struct {
	doc     *study.SQLiteDocument
	manager *project.Manager
	dir     string

	// changed covers edits the manager cannot see, like attaching an
	// unmodified application
	changed bool
}

func (a *app) newSession() *session {
	doc := study.NewSQLiteDocument(a.cfg.Study.HostVersion)
	store := study.NewStore(a.fs, doc, a.log)

	opts := []project.Option{project.WithLogger(a.log)}
	if a.now != nil {
		opts = append(opts, project.WithClock(a.now))
	}

	return &session{
		doc:     doc,
		manager: project.NewManager(a.fs, store, a.registry, opts...),
	}
}

// open loads the project at path, asking for one when path is empty
func (a *app) open(path string) (*session, error) {
	if path == "" {
		picked, err := a.picker.OpenPath()
		if err != nil {
			return nil, err
		}
		if picked == "" {
			return nil, errAborted
		}
		path = picked
	}

	s := a.newSession()
	ok, err := s.manager.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("project %s was opened with errors", path)
	}

	s.dir = filepath.Clean(path)
	return s, nil
}

// save writes the session to path and fails when the save was incomplete
func (a *app) save(s *session, path string) error {
	ok, err := s.manager.Save(path)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	if !ok {
		return fmt.Errorf("project %s was saved with errors", paths.WithSuffix(path, project.Suffix))
	}
	return nil
}

// mutate opens the project, applies fn and saves the project back when
// anything changed
func (a *app) mutate(cmd *cobra.Command, path string, fn func(s *session) error) error {
	s, err := a.open(path)
	if errors.Is(err, errAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := fn(s); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !s.changed && !s.manager.HasUnsavedChanges() {
		fmt.Fprintln(out, tui.SubtleStyle.Render("Nothing to save"))
		return nil
	}

	if err := a.save(s, s.dir); err != nil {
		return err
	}
	fmt.Fprintln(out, tui.SuccessStyle.Render("✓ Saved "+s.dir))
	return nil
}

func addProjectFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("project", "p", "", "Project directory (asks when omitted)")
}

func projectFlag(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("project")
	return p
}
