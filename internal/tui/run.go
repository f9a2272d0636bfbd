// pattern: Imperative Shell

package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"prj/internal/registry"
)

// RunPicker runs the fuzzy picker on the alternate screen of out and
// returns the chosen project path. ok is false when the user cancelled.
func RunPicker(projects []registry.Project, theme string, out io.Writer) (string, bool, error) {
	final, err := tea.NewProgram(NewPicker(projects, theme), tea.WithAltScreen(), tea.WithOutput(out)).Run()
	if err != nil {
		return "", false, fmt.Errorf("picker: %w", err)
	}
	path, ok := final.(Picker).Result()
	return path, ok, nil
}

// RunList runs the List navigator over reg and returns the path chosen with
// "cd to project". A registry save failure during the session is returned
// after the screen is restored.
func RunList(reg *registry.Registry, deps ListDeps, out io.Writer) (string, bool, error) {
	final, err := tea.NewProgram(NewList(reg, deps), tea.WithAltScreen(), tea.WithOutput(out)).Run()
	if err != nil {
		return "", false, fmt.Errorf("list: %w", err)
	}
	m := final.(List)
	if m.err != nil {
		return "", false, m.err
	}
	path, ok := m.Result()
	return path, ok, nil
}
