// Package pathpicker asks the user for project directories to open and save.
package pathpicker

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-ksp/internal/paths"
	"github.com/jakoblorz/go-ksp/internal/project"
	"go.uber.org/zap"
)

// ErrInvalidProjectFolder is returned when the selected folder to open is
// not a project folder
var ErrInvalidProjectFolder = errors.New(`Invalid project folder selected, must end with ".ksp"!`)

// Prompter asks for a path. start is the directory to start in.
type Prompter interface {
	Prompt(title, start string) (string, error)
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(title, start string) (string, error)

func (f PrompterFunc) Prompt(title, start string) (string, error) {
	return f(title, start)
}

// Handler remembers the directory of the last selection and uses it as the
// start point of the next prompt
type Handler struct {
	prompter Prompter
	lastDir  string
	log      *zap.Logger
}

// NewHandler creates a Handler starting in startDir. A nil prompter uses
// the interactive huh form.
func NewHandler(prompter Prompter, startDir string, log *zap.Logger) *Handler {
	if prompter == nil {
		prompter = NewHuhPrompter()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		prompter: prompter,
		lastDir:  startDir,
		log:      log.Named("pathpicker"),
	}
}

// LastDirectory is the start point of the next prompt
func (h *Handler) LastDirectory() string {
	return h.lastDir
}

// OpenPath asks for an existing project directory. It returns "" when the
// user aborts.
func (h *Handler) OpenPath() (string, error) {
	path, err := h.prompt("Open project")
	if err != nil || path == "" {
		return "", err
	}

	if paths.Suffix(path) != project.Suffix {
		return "", ErrInvalidProjectFolder
	}

	h.log.Debug("Opening project path", zap.String("path", path))
	h.lastDir = filepath.Dir(path)
	return path, nil
}

// SavePath asks where to save the project; the .ksp suffix is forced. It
// returns "" when the user aborts.
func (h *Handler) SavePath() (string, error) {
	path, err := h.prompt("Save project")
	if err != nil || path == "" {
		return "", err
	}

	path = paths.WithSuffix(path, project.Suffix)

	h.log.Debug("Saving project path", zap.String("path", path))
	h.lastDir = filepath.Dir(path)
	return path, nil
}

func (h *Handler) prompt(title string) (string, error) {
	answer, err := h.prompter.Prompt(title, h.lastDir)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", nil
	}
	return filepath.Clean(answer), nil
}
