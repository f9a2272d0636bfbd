// pattern: Imperative Shell

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"prj/internal/fuzzy"
	"prj/internal/registry"
)

// Picker is the fuzzy project search: type to filter, Enter to choose.
type Picker struct {
	projects []registry.Project
	names    []string
	matcher  *fuzzy.Matcher
	styles   *Styles
	query    string
	filtered []fuzzy.Match
	selected int
	result   string
	chosen   bool
	width    int
	height   int
}

// NewPicker creates a Picker over projects with every project listed.
func NewPicker(projects []registry.Project, theme string) Picker {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	m := Picker{
		projects: projects,
		names:    names,
		matcher:  fuzzy.NewMatcher(),
		styles:   NewStyles(theme),
	}
	m.refilter()
	return m
}

// Init implements tea.Model.
func (m Picker) Init() tea.Cmd {
	return nil
}

// Result returns the chosen project path, if any.
func (m Picker) Result() (string, bool) {
	return m.result, m.chosen
}

// Query returns the current search text.
func (m Picker) Query() string {
	return m.query
}

func (m *Picker) refilter() {
	m.filtered = m.matcher.Filter(m.query, m.names)
	m.selected = 0
}

// Update handles messages and updates the model.
func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.selected < len(m.filtered) {
				m.result = m.projects[m.filtered[m.selected].Index].Path
				m.chosen = true
			}
			return m, tea.Quit
		case tea.KeyUp:
			m.selected = moveUp(m.selected)
		case tea.KeyDown:
			m.selected = moveDown(m.selected, len(m.filtered))
		case tea.KeyBackspace:
			if m.query != "" {
				r := []rune(m.query)
				m.query = string(r[:len(r)-1])
				m.refilter()
			}
		case tea.KeyRunes, tea.KeySpace:
			m.query += string(msg.Runes)
			m.refilter()
		}
	}
	return m, nil
}

// View renders the search box, ranked results and status bar.
func (m Picker) View() string {
	layout := ComputeLayout(m.width, m.height, pickerHeaderHeight)
	width := layout.Content.Width

	input := m.styles.InputBoxStyle().
		Width(width - 2).
		Render(m.styles.AccentStyle().Render("> ") + m.query)

	start, end := scrollWindow(m.selected, len(m.filtered), layout.Content.Height)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(i, width))
	}
	if len(m.filtered) == 0 {
		rows = append(rows, m.styles.HelpStyle().Render("  no matching projects"))
	}
	for len(rows) < layout.Content.Height {
		rows = append(rows, "")
	}

	status := m.styles.AccentStyle().Render(fmt.Sprintf(" %d/%d ", len(m.filtered), len(m.projects))) +
		m.styles.HelpStyle().Render(" | Esc: cancel | Enter: select")

	return lipgloss.JoinVertical(lipgloss.Left, input, strings.Join(rows, "\n"), status)
}

func (m Picker) renderRow(i, width int) string {
	p := m.projects[m.filtered[i].Index]

	name := "  " + p.Name
	if i == m.selected {
		name = m.styles.SelectedStyle().Render("> " + p.Name)
	}

	row := name + m.styles.PathStyle().Render("  "+p.Path)
	if len(p.Tags) > 0 {
		row += m.styles.TagStyle().Render("  [" + strings.Join(p.Tags, ", ") + "]")
	}
	return ansi.Truncate(row, width, "…")
}
