// pattern: Functional Core

package tui

import "prj/internal/registry"

// Action is an entry in the List mode action menu.
type Action int

const (
	ActionViewStats Action = iota
	ActionClean
	ActionOpenEditor
	ActionOpenExplorer
	ActionCd
	ActionRemove
)

// Label returns the menu text for the action.
func (a Action) Label() string {
	switch a {
	case ActionViewStats:
		return "View stats"
	case ActionClean:
		return "Clean artifacts"
	case ActionOpenEditor:
		return "Open in editor"
	case ActionOpenExplorer:
		return "Open in explorer"
	case ActionCd:
		return "cd to project"
	case ActionRemove:
		return "Remove"
	default:
		return "unknown"
	}
}

// Description returns a one-line explanation shown next to the selected action.
func (a Action) Description() string {
	switch a {
	case ActionViewStats:
		return "Show detailed project statistics"
	case ActionClean:
		return "Delete build artifact directories"
	case ActionOpenEditor:
		return "Open project in $EDITOR"
	case ActionOpenExplorer:
		return "Open project folder in file manager"
	case ActionCd:
		return "Change directory to project"
	case ActionRemove:
		return "Unregister project from database"
	default:
		return ""
	}
}

// MenuFor builds the action menu for a project. Clean is offered only when
// the project has artifact directories recorded.
func MenuFor(p registry.Project) []Action {
	menu := []Action{ActionViewStats}
	if len(p.ArtifactDirs) > 0 {
		menu = append(menu, ActionClean)
	}
	return append(menu, ActionOpenEditor, ActionOpenExplorer, ActionCd, ActionRemove)
}
