// pattern: Imperative Shell

package tui

import (
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"prj/internal/gitstatus"
	"prj/internal/logging"
	"prj/internal/registry"
	"prj/internal/stats"
)

// Saver persists the registry after a mutating confirmation.
type Saver interface {
	Save(reg *registry.Registry) error
}

// ListDeps are the collaborators the List navigator calls on demand.
type ListDeps struct {
	Store    Saver
	Git      map[string]*gitstatus.Status // keyed by canonical path
	Stats    func(p registry.Project) stats.ProjectStats
	Clean    func(path string, dirs []string) (uint64, error)
	Editor   func(path string) (*exec.Cmd, error)
	Explorer func(path string) error
	Logger   *logging.ScopedLogger
	Theme    string
	Tag      string // when set, only projects carrying this tag are listed
}

// editorFinishedMsg is sent when the suspended editor process exits.
type editorFinishedMsg struct {
	err error
}

// List is the interactive project table with its action menu.
type List struct {
	reg      *registry.Registry
	deps     ListDeps
	styles   *Styles
	logger   *logging.ScopedLogger
	selected int
	mode     listMode
	message  string
	result   string
	chosen   bool
	err      error // last registry save failure
	width    int
	height   int
}

// NewList creates a List navigator over reg.
func NewList(reg *registry.Registry, deps ListDeps) List {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	if deps.Git == nil {
		deps.Git = map[string]*gitstatus.Status{}
	}
	return List{
		reg:    reg,
		deps:   deps,
		styles: NewStyles(deps.Theme),
		logger: logger,
		mode:   browsing{},
	}
}

// Init implements tea.Model.
func (m List) Init() tea.Cmd {
	return nil
}

// Result returns the chosen project path, if the session ended with one.
func (m List) Result() (string, bool) {
	return m.result, m.chosen
}

// visible returns the projects shown in the table, honoring the tag filter.
func (m List) visible() []registry.Project {
	if m.deps.Tag == "" {
		return m.reg.Projects
	}
	return m.reg.WithTag(m.deps.Tag)
}

// current returns the selected project.
func (m List) current() (registry.Project, bool) {
	projects := m.visible()
	if m.selected < 0 || m.selected >= len(projects) {
		return registry.Project{}, false
	}
	return projects[m.selected], true
}

// gitStatus returns the cached git status for a project path.
func (m List) gitStatus(path string) *gitstatus.Status {
	return m.deps.Git[path]
}
