// pattern: Functional Core

package tui

import "prj/internal/stats"

// listMode is the List navigator's modal state. Each variant carries only
// the data its mode needs.
type listMode interface {
	isListMode()
}

type browsing struct{}

type actionMenu struct {
	selected int
}

type viewingStats struct {
	stats stats.ProjectStats
}

type confirming struct {
	label   string
	pending pendingAction
}

type cleanResult struct {
	message string
}

func (browsing) isListMode()     {}
func (actionMenu) isListMode()   {}
func (viewingStats) isListMode() {}
func (confirming) isListMode()   {}
func (cleanResult) isListMode()  {}

// pendingAction is the destructive operation awaiting confirmation.
type pendingAction int

const (
	pendingRemove pendingAction = iota
	pendingClean
)
