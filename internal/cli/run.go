// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"

	"prj/internal/registry"
)

func (e *Env) runRun(args []string) error {
	const usage = "Usage: prj run <command> [--project NAME | --tag TAG | --all]"
	fs := newFlagSet("run")
	project := fs.String("project", "", "target a specific project")
	tag := fs.String("tag", "", "target projects with this tag")
	all := fs.Bool("all", false, "run in all projects")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usageError(usage)
	}
	command := fs.Arg(0)

	reg, err := e.load()
	if err != nil {
		return err
	}

	var targets []registry.Project
	switch {
	case *project != "":
		p, ok := reg.Find(*project)
		if !ok {
			return fmt.Errorf("%w: %s", registry.ErrProjectNotFound, *project)
		}
		targets = []registry.Project{*p}
	case *tag != "":
		targets = reg.WithTag(*tag)
		if len(targets) == 0 {
			e.status("No projects found with tag: %s", *tag)
			return nil
		}
	case *all:
		targets = reg.Projects
	default:
		return fmt.Errorf("%w: pass --project, --tag or --all", registry.ErrNoTargetProjects)
	}

	runner := e.runner()
	ctx := context.Background()
	for i, p := range targets {
		if i > 0 {
			e.status("")
		}
		e.status("=== %s (%s) ===", p.Name, p.Path)

		code, err := runner.RunShell(ctx, p.Path, command, e.Stdout, e.Stderr)
		switch {
		case err != nil:
			e.status("[%s] failed to execute: %v", p.Name, err)
		case code != 0:
			e.status("[%s] exited with code %d", p.Name, code)
		}
	}
	return nil
}
