// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"prj/internal/clean"
	"prj/internal/process"
	"prj/internal/registry"
	"prj/internal/stats"
	"prj/internal/tui"
)

const noProjectsHint = "No projects registered. Use `prj add` or `prj scan` to add projects."

// Pick runs the fuzzy picker and prints the chosen path on stdout.
func (e *Env) Pick() error {
	reg, err := e.load()
	if err != nil {
		return err
	}
	if reg.Len() == 0 {
		e.status(noProjectsHint)
		return nil
	}

	path, ok, err := e.RunPicker(reg.Projects, e.Config.Theme)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(e.Stdout, path)
	}
	return nil
}

func (e *Env) runList(args []string) error {
	const usage = "Usage: prj list [--plain] [--tag TAG]"
	fs := newFlagSet("list")
	plain := fs.Bool("plain", false, "plain text output (no TUI)")
	tag := fs.String("tag", "", "filter by tag")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return usageError(usage)
	}

	if *plain || !e.IsTerminal() {
		reg, err := e.load()
		if err != nil {
			return err
		}
		return e.printPlainList(reg, *tag)
	}
	return e.interactiveList(*tag)
}

// printPlainList writes one tab-separated line per project:
// name, path, vcs, build systems, tags.
func (e *Env) printPlainList(reg *registry.Registry, tag string) error {
	projects := reg.Projects
	if tag != "" {
		projects = reg.WithTag(tag)
	}
	if len(projects) == 0 {
		e.status(noProjectsHint)
		return nil
	}

	for _, p := range projects {
		vcs := make([]string, len(p.VCS))
		for i, v := range p.VCS {
			vcs[i] = string(v)
		}
		builds := make([]string, len(p.BuildSystems))
		for i, b := range p.BuildSystems {
			builds[i] = string(b)
		}
		fmt.Fprintf(e.Stdout, "%s\t%s\t%s\t%s\t%s\n",
			p.Name,
			p.Path,
			dashIfEmpty(strings.Join(vcs, ",")),
			dashIfEmpty(strings.Join(builds, ",")),
			dashIfEmpty(strings.Join(p.Tags, ",")),
		)
	}
	return nil
}

// interactiveList runs the List navigator under the registry lock so
// removals made in the session are the only writer.
func (e *Env) interactiveList(tag string) error {
	store := e.store()
	lock, err := store.Lock()
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	reg, err := store.Load()
	if err != nil {
		return err
	}
	projects := reg.Projects
	if tag != "" {
		projects = reg.WithTag(tag)
	}
	if len(projects) == 0 {
		e.status(noProjectsHint)
		return nil
	}

	paths := make([]string, 0, len(projects))
	for _, p := range projects {
		if len(p.VCS) > 0 {
			paths = append(paths, p.Path)
		}
	}
	ctx := context.Background()
	git := e.gitCollector()
	statuses := git.CollectAll(ctx, paths, e.workers())

	collector := stats.NewCollector(git, e.logger("stats"))
	runner := e.runner()
	editor := e.Config.Editor

	deps := tui.ListDeps{
		Store: store,
		Git:   statuses,
		Stats: func(p registry.Project) stats.ProjectStats {
			return collector.CollectProject(ctx, p)
		},
		Clean: clean.Execute,
		Editor: func(path string) (*exec.Cmd, error) {
			return process.EditorCommand(editor, path)
		},
		Explorer: runner.OpenFileManager,
		Logger:   e.logger("tui"),
		Theme:    e.Config.Theme,
		Tag:      tag,
	}

	path, ok, err := e.RunList(reg, deps)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(e.Stdout, path)
	}
	return nil
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
