// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"prj/internal/gitstatus"
	"prj/internal/registry"
	"prj/internal/stats"
)

func (e *Env) runStats(args []string) error {
	const usage = "Usage: prj stats [project] [--json]"
	fs := newFlagSet("stats")
	asJSON := fs.Bool("json", false, "output as JSON")
	if err := fs.Parse(args); err != nil || fs.NArg() > 1 {
		return usageError(usage)
	}

	reg, err := e.load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	collector := stats.NewCollector(e.gitCollector(), e.logger("stats"))

	if name := fs.Arg(0); name != "" {
		p, ok := reg.Find(name)
		if !ok {
			return fmt.Errorf("%w: %s", registry.ErrProjectNotFound, name)
		}
		ps := collector.CollectProject(ctx, *p)
		if *asJSON {
			return e.printJSON(ps)
		}
		printProjectStats(e.Stderr, ps)
		return nil
	}

	overview := collector.CollectOverview(ctx, reg.Projects, e.workers())
	if *asJSON {
		return e.printJSON(overview)
	}
	printOverview(e.Stderr, overview)
	return nil
}

func printProjectStats(w io.Writer, s stats.ProjectStats) {
	fmt.Fprintf(w, "Project: %s\n\n", s.Name)

	if git := s.Git; git != nil {
		fmt.Fprintf(w, "  Git: %s (%s)\n", branchOr(git, "(detached)"), cleanOrDirty(git))
		if git.IsDirty() {
			fmt.Fprintf(w, "    changed: %d, staged: %d, untracked: %d\n", git.Changed, git.Staged, git.Untracked)
		}
		if git.Ahead > 0 || git.Behind > 0 {
			fmt.Fprintf(w, "    ahead: %d, behind: %d\n", git.Ahead, git.Behind)
		}
	}

	fmt.Fprintf(w, "\n  Lines of Code: %d\n", s.Loc.TotalCode)
	for _, name := range s.Loc.LanguageNames() {
		ls := s.Loc.Languages[name]
		fmt.Fprintf(w, "    %s: %d code, %d comments, %d blanks (%d files)\n",
			name, ls.Code, ls.Comments, ls.Blanks, ls.Files)
	}

	fmt.Fprintf(w, "\n  Disk: %s total, %s artifacts\n", s.Disk.TotalDisplay(), s.Disk.ArtifactDisplay())
}

func printOverview(w io.Writer, o stats.Overview) {
	fmt.Fprintf(w, "Projects: %d\n", o.TotalProjects)
	fmt.Fprintf(w, "Total code lines: %d\n", o.TotalCodeLines)
	fmt.Fprintf(w, "Total disk: %s, artifacts: %s\n",
		stats.FormatBytes(o.TotalDiskBytes), stats.FormatBytes(o.TotalArtifactBytes))
	fmt.Fprintf(w, "Dirty projects: %d\n\n", o.DirtyProjects)

	fmt.Fprintf(w, "  %-20s %-12s %-10s %-10s %-10s\n", "Name", "Branch", "Status", "LOC", "Disk")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 62))
	for _, s := range o.Projects {
		branch, state := "-", "-"
		if s.Git != nil {
			branch = branchOr(s.Git, "-")
			state = cleanOrDirty(s.Git)
		}
		fmt.Fprintf(w, "  %-20s %-12s %-10s %-10d %-10s\n",
			s.Name, branch, state, s.Loc.TotalCode, s.Disk.TotalDisplay())
	}
}

// statusEntry is one row of the git dashboard.
type statusEntry struct {
	Name      string `json:"name"`
	Branch    string `json:"branch,omitempty"`
	Status    string `json:"status"`
	Changed   int    `json:"changed"`
	Staged    int    `json:"staged"`
	Untracked int    `json:"untracked"`
	Ahead     int    `json:"ahead"`
	Behind    int    `json:"behind"`
}

func newStatusEntry(name string, git *gitstatus.Status) statusEntry {
	if git == nil {
		return statusEntry{Name: name, Status: "no-vcs"}
	}
	return statusEntry{
		Name:      name,
		Branch:    git.Branch,
		Status:    cleanOrDirty(git),
		Changed:   git.Changed,
		Staged:    git.Staged,
		Untracked: git.Untracked,
		Ahead:     git.Ahead,
		Behind:    git.Behind,
	}
}

func (e *Env) runStatus(args []string) error {
	const usage = "Usage: prj status [--json]"
	fs := newFlagSet("status")
	asJSON := fs.Bool("json", false, "output as JSON")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return usageError(usage)
	}

	reg, err := e.load()
	if err != nil {
		return err
	}
	if reg.Len() == 0 {
		e.status("No projects registered.")
		return nil
	}

	paths := make([]string, reg.Len())
	for i, p := range reg.Projects {
		paths[i] = p.Path
	}
	statuses := e.gitCollector().CollectAll(context.Background(), paths, e.workers())

	entries := make([]statusEntry, reg.Len())
	for i, p := range reg.Projects {
		entries[i] = newStatusEntry(p.Name, statuses[p.Path])
	}

	if *asJSON {
		return e.printJSON(entries)
	}
	printStatusTable(e.Stderr, entries)
	return nil
}

func printStatusTable(w io.Writer, entries []statusEntry) {
	fmt.Fprintf(w, "  %-20s %-15s %-10s %-8s %-8s %-10s %-10s\n",
		"Name", "Branch", "Status", "Changed", "Staged", "Untracked", "Ahead/Behind")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 81))
	for _, e := range entries {
		branch := e.Branch
		if branch == "" {
			branch = "-"
		}
		sync := "-"
		if e.Ahead > 0 || e.Behind > 0 {
			sync = fmt.Sprintf("%d↑ %d↓", e.Ahead, e.Behind)
		}
		fmt.Fprintf(w, "  %-20s %-15s %-10s %-8d %-8d %-10d %-10s\n",
			e.Name, branch, e.Status, e.Changed, e.Staged, e.Untracked, sync)
	}
}

func branchOr(git *gitstatus.Status, fallback string) string {
	if git.Branch == "" {
		return fallback
	}
	return git.Branch
}

func cleanOrDirty(git *gitstatus.Status) string {
	if git.IsDirty() {
		return "dirty"
	}
	return "clean"
}
