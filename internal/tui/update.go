// pattern: Imperative Shell

package tui

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"prj/internal/registry"
	"prj/internal/stats"
)

// Update handles messages and updates the model.
func (m List) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.logger.Warn("editor exited with error", "error", msg.err)
			m.message = "Failed to launch editor: " + msg.err.Error()
		}
		m.mode = browsing{}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch mode := m.mode.(type) {
		case browsing:
			return m.handleBrowsingKey(msg)
		case actionMenu:
			return m.handleActionMenuKey(msg, mode)
		case viewingStats:
			return m.handleStatsKey(msg)
		case confirming:
			return m.handleConfirmKey(msg, mode)
		case cleanResult:
			return m.handleResultKey(msg)
		}
	}
	return m, nil
}

// handleBrowsingKey moves through the table and opens the action menu.
func (m List) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	n := len(m.visible())

	switch msg.Type {
	case tea.KeyUp:
		m.selected = moveUp(m.selected)
		return m, nil
	case tea.KeyDown:
		m.selected = moveDown(m.selected, n)
		return m, nil
	case tea.KeyEnter:
		if n > 0 {
			m.mode = actionMenu{}
		}
		return m, nil
	case tea.KeyEscape:
		return m, tea.Quit
	}

	switch msg.String() {
	case "k":
		m.selected = moveUp(m.selected)
	case "j":
		m.selected = moveDown(m.selected, n)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// handleActionMenuKey navigates the action menu and dispatches the chosen action.
func (m List) handleActionMenuKey(msg tea.KeyMsg, mode actionMenu) (tea.Model, tea.Cmd) {
	project, ok := m.current()
	if !ok {
		m.mode = browsing{}
		return m, nil
	}
	menu := MenuFor(project)

	switch msg.Type {
	case tea.KeyEscape:
		m.mode = browsing{}
		return m, nil
	case tea.KeyUp:
		m.mode = actionMenu{selected: moveUp(mode.selected)}
		return m, nil
	case tea.KeyDown:
		m.mode = actionMenu{selected: moveDown(mode.selected, len(menu))}
		return m, nil
	case tea.KeyEnter:
		if mode.selected >= len(menu) {
			return m, nil
		}
		return m.dispatch(menu[mode.selected], project)
	}

	switch msg.String() {
	case "k":
		m.mode = actionMenu{selected: moveUp(mode.selected)}
	case "j":
		m.mode = actionMenu{selected: moveDown(mode.selected, len(menu))}
	}
	return m, nil
}

// dispatch runs a menu action against the selected project.
func (m List) dispatch(action Action, project registry.Project) (tea.Model, tea.Cmd) {
	m.logger.Debug("menu action", "action", action.Label(), "project", project.Name)

	switch action {
	case ActionViewStats:
		var ps stats.ProjectStats
		if m.deps.Stats != nil {
			ps = m.deps.Stats(project)
		} else {
			ps = stats.ProjectStats{Name: project.Name, Path: project.Path}
		}
		m.mode = viewingStats{stats: ps}
		return m, nil

	case ActionClean:
		m.mode = confirming{label: "Clean artifacts", pending: pendingClean}
		return m, nil

	case ActionOpenEditor:
		m.mode = browsing{}
		if m.deps.Editor == nil {
			m.message = "Failed to launch editor: no editor configured"
			return m, nil
		}
		cmd, err := m.deps.Editor(project.Path)
		if err != nil {
			m.message = "Failed to launch editor: " + err.Error()
			return m, nil
		}
		return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
			return editorFinishedMsg{err: err}
		})

	case ActionOpenExplorer:
		m.mode = browsing{}
		if m.deps.Explorer == nil {
			m.message = "Failed to open file manager: not available"
			return m, nil
		}
		if err := m.deps.Explorer(project.Path); err != nil {
			m.logger.Warn("file manager failed", "path", project.Path, "error", err)
			m.message = "Failed to open file manager: " + err.Error()
		} else {
			m.message = "Opened in file manager"
		}
		return m, nil

	case ActionCd:
		m.result = project.Path
		m.chosen = true
		return m, tea.Quit

	case ActionRemove:
		m.mode = confirming{label: "Remove project", pending: pendingRemove}
		return m, nil
	}
	return m, nil
}

func (m List) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape || msg.Type == tea.KeyEnter || msg.String() == "q" {
		m.mode = browsing{}
	}
	return m, nil
}

// handleConfirmKey executes the pending action on y/Y and cancels on n/N/Esc.
func (m List) handleConfirmKey(msg tea.KeyMsg, mode confirming) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		m.mode = browsing{}
		return m, nil
	}

	switch msg.String() {
	case "y", "Y":
		switch mode.pending {
		case pendingRemove:
			return m.confirmRemove()
		case pendingClean:
			return m.confirmClean()
		}
	case "n", "N":
		m.mode = browsing{}
	}
	return m, nil
}

// confirmRemove unregisters the selected project and persists the registry.
func (m List) confirmRemove() (tea.Model, tea.Cmd) {
	project, ok := m.current()
	if !ok {
		m.mode = browsing{}
		return m, nil
	}

	i := slices.IndexFunc(m.reg.Projects, func(p registry.Project) bool {
		return p.Path == project.Path
	})
	if i < 0 {
		m.mode = browsing{}
		return m, nil
	}
	removed := m.reg.RemoveAt(i)
	delete(m.deps.Git, removed.Path)
	m.logger.Info("removed project", "name", removed.Name, "path", removed.Path)

	m.message = "Removed: " + removed.Name
	if m.deps.Store != nil {
		if err := m.deps.Store.Save(m.reg); err != nil {
			m.logger.Error("failed to save registry", "error", err)
			m.err = err
			m.message = "Error: " + err.Error()
		}
	}

	n := len(m.visible())
	if n == 0 {
		return m, tea.Quit
	}
	if m.selected >= n {
		m.selected = n - 1
	}
	m.mode = browsing{}
	return m, nil
}

// confirmClean deletes the selected project's artifact directories.
func (m List) confirmClean() (tea.Model, tea.Cmd) {
	project, ok := m.current()
	if !ok || m.deps.Clean == nil {
		m.mode = browsing{}
		return m, nil
	}

	freed, err := m.deps.Clean(project.Path, project.ArtifactDirs)
	if err != nil {
		m.logger.Error("clean failed", "project", project.Name, "error", err)
		m.mode = cleanResult{message: "Error: " + err.Error()}
		return m, nil
	}
	m.logger.Info("cleaned artifacts", "project", project.Name, "freed", freed)
	m.mode = cleanResult{message: fmt.Sprintf("Cleaned %s: freed %s", project.Name, stats.FormatBytes(freed))}
	return m, nil
}

func (m List) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape || msg.Type == tea.KeyEnter {
		m.mode = browsing{}
	}
	return m, nil
}

// moveUp decrements a selection index, stopping at zero.
func moveUp(i int) int {
	if i > 0 {
		return i - 1
	}
	return 0
}

// moveDown increments a selection index, stopping at the last of n items.
func moveDown(i, n int) int {
	if i+1 < n {
		return i + 1
	}
	return i
}
