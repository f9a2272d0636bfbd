// pattern: Imperative Shell
package cli

import (
	"fmt"

	"prj/internal/clean"
	"prj/internal/registry"
	"prj/internal/stats"
)

func (e *Env) runClean(args []string) error {
	const usage = "Usage: prj clean [project] [--all] [--dry-run]"
	fs := newFlagSet("clean")
	all := fs.Bool("all", false, "clean all projects")
	dryRun := fs.Bool("dry-run", false, "only show what would be deleted")
	if err := fs.Parse(args); err != nil || fs.NArg() > 1 {
		return usageError(usage)
	}

	reg, err := e.load()
	if err != nil {
		return err
	}

	var targets []registry.Project
	switch name := fs.Arg(0); {
	case name != "":
		p, ok := reg.Find(name)
		if !ok {
			return fmt.Errorf("%w: %s", registry.ErrProjectNotFound, name)
		}
		targets = []registry.Project{*p}
	case *all:
		targets = reg.Projects
	default:
		return fmt.Errorf("%w: name a project or pass --all", registry.ErrNoTargetProjects)
	}

	logger := e.logger("cli")
	var freed uint64
	for _, p := range targets {
		if len(p.ArtifactDirs) == 0 {
			continue
		}
		preview := clean.PreviewDirs(p.Path, p.ArtifactDirs)
		if preview.IsEmpty() {
			continue
		}

		e.status("%s:", p.Name)
		for _, d := range preview.Dirs {
			e.status("  %s: %s", d.Name, stats.FormatBytes(d.Bytes))
		}
		e.status("  Total: %s", stats.FormatBytes(preview.TotalBytes))

		if !*dryRun {
			n, err := clean.Execute(p.Path, p.ArtifactDirs)
			if err != nil {
				logger.Error("clean failed", "project", p.Name, "error", err)
				e.status("  -> Error: %v", err)
			} else {
				logger.Info("cleaned artifacts", "project", p.Name, "freed", n)
				freed += n
				e.status("  -> Cleaned")
			}
		}
		e.status("")
	}

	if *dryRun {
		e.status("Dry run complete. No files were deleted.")
	} else {
		e.status("Total freed: %s", stats.FormatBytes(freed))
	}
	return nil
}
