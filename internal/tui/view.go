// pattern: Imperative Shell

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"prj/internal/registry"
	"prj/internal/stats"
)

// tableWeights are the relative widths of Name, Path, VCS, Build, Tags, Status.
var tableWeights = []int{15, 30, 8, 12, 15, 10}

// View renders the TUI.
func (m List) View() string {
	switch mode := m.mode.(type) {
	case actionMenu:
		return m.renderActionMenu(mode)
	case viewingStats:
		return m.renderStatsView(mode.stats)
	case confirming:
		return m.renderConfirmDialog(mode)
	case cleanResult:
		return m.renderMessagePopup("Result", mode.message)
	}

	layout := ComputeLayout(m.width, m.height, listHeaderHeight)
	projects := m.visible()

	title := "Projects"
	if m.deps.Tag != "" {
		title += " tagged " + m.deps.Tag
	}
	header := m.styles.TitleStyle().Render(title) + "\n"

	tbl := m.buildTable(projects, layout)

	status := m.styles.AccentStyle().Render(fmt.Sprintf(" %d projects ", len(projects))) +
		m.styles.HelpStyle().Render(" | q: quit | j/k: navigate | Enter: actions")
	if m.message != "" {
		status += "  " + m.styles.MessageStyle().Render(m.message)
	}
	status = ansi.Truncate(status, layout.StatusBar.Width, "…")

	return lipgloss.JoinVertical(lipgloss.Left, header, tbl.View(), status)
}

// buildTable renders the rows around the selected project into a bubbles
// table. The table is rebuilt every frame and never scrolls itself, so it
// only receives the window that keeps the cursor on screen.
func (m List) buildTable(projects []registry.Project, layout Layout) table.Model {
	widths := columnWidths(layout.Content.Width, tableWeights)
	titles := []string{"Name", "Path", "VCS", "Build", "Tags", "Status"}
	columns := make([]table.Column, len(titles))
	for i, t := range titles {
		columns[i] = table.Column{Title: t, Width: widths[i]}
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(layout.Content.Height),
		table.WithFocused(true),
		table.WithStyles(m.styles.TableStyles()),
	)

	start, end := scrollWindow(m.selected, len(projects), tbl.Height())
	rows := make([]table.Row, 0, end-start)
	for _, p := range projects[start:end] {
		rows = append(rows, m.projectRow(p, widths[1]))
	}
	tbl.SetRows(rows)
	tbl.SetCursor(m.selected - start)
	return tbl
}

func (m List) projectRow(p registry.Project, pathWidth int) table.Row {
	vcs := make([]string, len(p.VCS))
	for i, v := range p.VCS {
		vcs[i] = string(v)
	}
	builds := make([]string, len(p.BuildSystems))
	for i, b := range p.BuildSystems {
		builds[i] = string(b)
	}

	return table.Row{
		p.Name,
		truncateLeft(p.Path, pathWidth),
		orDash(strings.Join(vcs, ",")),
		orDash(strings.Join(builds, ",")),
		orDash(strings.Join(p.Tags, ", ")),
		m.statusCell(p),
	}
}

// statusCell summarizes the cached git state: dirty, clean, "-" without a
// VCS, or "..." for a repository whose status was not collected.
func (m List) statusCell(p registry.Project) string {
	if st := m.gitStatus(p.Path); st != nil {
		if st.IsDirty() {
			return "dirty"
		}
		return "clean"
	}
	if len(p.VCS) == 0 {
		return "-"
	}
	return "..."
}

func (m List) renderActionMenu(mode actionMenu) string {
	project, ok := m.current()
	if !ok {
		return ""
	}
	menu := MenuFor(project)

	var b strings.Builder
	b.WriteString(m.styles.TitleStyle().Render("Actions: " + project.Name))
	b.WriteString("\n\n")
	for i, a := range menu {
		if i == mode.selected {
			b.WriteString(m.styles.SelectedStyle().Render("> " + a.Label()))
			b.WriteString(m.styles.HelpStyle().Render("  " + a.Description()))
		} else {
			b.WriteString(m.styles.InfoStyle().Render("  " + a.Label()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.HelpStyle().Render("Enter: select  Esc: cancel"))

	return m.placeModal(b.String())
}

func (m List) renderStatsView(ps stats.ProjectStats) string {
	var b strings.Builder
	label := m.styles.AccentStyle()

	b.WriteString(m.styles.TitleStyle().Render("Stats: " + ps.Name))
	b.WriteString("\n\n")

	if git := ps.Git; git != nil {
		branch := git.Branch
		if branch == "" {
			branch = "(detached)"
		}
		state := "clean"
		if git.IsDirty() {
			state = "dirty"
		}
		b.WriteString(label.Render("Git: ") + fmt.Sprintf("%s (%s)\n", branch, state))
		if git.IsDirty() {
			fmt.Fprintf(&b, "  changed: %d, staged: %d, untracked: %d\n", git.Changed, git.Staged, git.Untracked)
		}
		if git.Ahead > 0 || git.Behind > 0 {
			fmt.Fprintf(&b, "  ahead: %d, behind: %d\n", git.Ahead, git.Behind)
		}
		b.WriteString("\n")
	}

	b.WriteString(label.Render("Lines of Code: ") + fmt.Sprintf("%d\n", ps.Loc.TotalCode))
	for _, name := range ps.Loc.LanguageNames() {
		ls := ps.Loc.Languages[name]
		fmt.Fprintf(&b, "  %s: %d code, %d comments, %d blanks (%d files)\n",
			name, ls.Code, ls.Comments, ls.Blanks, ls.Files)
	}
	b.WriteString("\n")

	b.WriteString(label.Render("Disk: ") +
		fmt.Sprintf("%s total, %s artifacts\n\n", ps.Disk.TotalDisplay(), ps.Disk.ArtifactDisplay()))
	b.WriteString(m.styles.HelpStyle().Render("Press Esc/Enter/q to close"))

	return m.placeModal(b.String())
}

func (m List) renderConfirmDialog(mode confirming) string {
	var b strings.Builder
	b.WriteString(m.styles.ErrorStyle().Render(mode.label))
	b.WriteString("\n\n")
	if project, ok := m.current(); ok {
		b.WriteString(m.styles.InfoStyle().Render(project.Name))
		b.WriteString("\n")
	}
	b.WriteString("Are you sure?\n\n")
	b.WriteString(m.styles.HelpStyle().Render("y: yes  n/Esc: cancel"))

	return m.placeModal(b.String())
}

func (m List) renderMessagePopup(title, message string) string {
	var b strings.Builder
	b.WriteString(m.styles.TitleStyle().Render(title))
	b.WriteString("\n\n")
	if strings.HasPrefix(message, "Error: ") {
		b.WriteString(m.styles.ErrorStyle().Render(message))
	} else {
		b.WriteString(m.styles.SuccessStyle().Render(message))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.HelpStyle().Render("Press Enter/Esc to close"))

	return m.placeModal(b.String())
}

// placeModal boxes a modal body and centers it on screen once the terminal
// size is known.
func (m List) placeModal(body string) string {
	boxed := m.styles.BoxStyle().Render(body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			boxed,
		)
	}
	return boxed
}

// truncateLeft shortens s to width cells, keeping its tail, which for paths
// is the informative end.
func truncateLeft(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return ansi.TruncateLeft(s, ansi.StringWidth(s)-width+1, "…")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
