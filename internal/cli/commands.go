// pattern: Imperative Shell
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	flag "github.com/spf13/pflag"

	"prj/internal/discovery"
	"prj/internal/registry"
	"prj/internal/shell"
)

// BuildApp creates and configures the CLI application with all commands.
func BuildApp(version string, env *Env) *App {
	app := NewApp(version, env.Stderr)

	app.AddCommand(&Command{
		Name:    "add",
		Summary: "Register a project (defaults to current directory)",
		Usage:   "Usage: prj add [path] [--name NAME]",
		Run:     env.runAdd,
	})
	app.AddCommand(&Command{
		Name:    "scan",
		Summary: "Recursively discover and register projects",
		Usage:   "Usage: prj scan <dir> [--depth N]",
		Run:     env.runScan,
	})
	app.AddCommand(&Command{
		Name:    "new",
		Summary: "Git clone and auto-register",
		Usage:   "Usage: prj new --git \"<clone arguments>\"",
		Run:     env.runNew,
	})
	app.AddCommand(&Command{
		Name:    "remove",
		Summary: "Unregister a project (no file deletion)",
		Usage:   "Usage: prj remove <project>",
		Run:     env.runRemove,
	})
	app.AddCommand(&Command{
		Name:    "list",
		Summary: "List registered projects",
		Usage:   "Usage: prj list [--plain] [--tag TAG]",
		Run:     env.runList,
	})
	app.AddCommand(&Command{
		Name:    "stats",
		Summary: "Show project statistics",
		Usage:   "Usage: prj stats [project] [--json]",
		Run:     env.runStats,
	})
	app.AddCommand(&Command{
		Name:    "init",
		Summary: "Output shell init script",
		Usage:   "Usage: prj init <" + strings.Join(shell.Supported(), "|") + "> [--cmd NAME]",
		Run:     env.runInit,
	})
	app.AddCommand(&Command{
		Name:    "tag",
		Summary: "Add tags to a project",
		Usage:   "Usage: prj tag <project> <tag>...",
		Run:     env.runTag,
	})
	app.AddCommand(&Command{
		Name:    "untag",
		Summary: "Remove tags from a project",
		Usage:   "Usage: prj untag <project> <tag>...",
		Run:     env.runUntag,
	})
	app.AddCommand(&Command{
		Name:    "status",
		Summary: "Quick git status dashboard across all projects",
		Usage:   "Usage: prj status [--json]",
		Run:     env.runStatus,
	})
	app.AddCommand(&Command{
		Name:    "gc",
		Summary: "Remove projects whose paths no longer exist",
		Usage:   "Usage: prj gc [--dry-run] [--yes]",
		Run:     env.runGC,
	})
	app.AddCommand(&Command{
		Name:    "clean",
		Summary: "Delete artifact directories (target, node_modules, etc.)",
		Usage:   "Usage: prj clean [project] [--all] [--dry-run]",
		Run:     env.runClean,
	})
	app.AddCommand(&Command{
		Name:    "run",
		Summary: "Run a command in project directories",
		Usage:   "Usage: prj run <command> [--project NAME | --tag TAG | --all]",
		Run:     env.runRun,
	})
	app.AddCommand(&Command{
		Name:    "export",
		Summary: "Export project manifest",
		Usage:   "Usage: prj export [--output FILE] [--base-dir DIR]",
		Run:     env.runExport,
	})
	app.AddCommand(&Command{
		Name:    "import",
		Summary: "Import and clone projects from a manifest",
		Usage:   "Usage: prj import <file> [--base-dir DIR]",
		Run:     env.runImport,
	})
	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: prj version",
		Run: func(args []string) error {
			fmt.Fprintln(env.Stdout, version)
			return nil
		},
	})

	return app
}

// errUsage reports malformed command arguments.
var errUsage = errors.New("invalid arguments")

func usageError(usage string) error {
	return fmt.Errorf("%w\n%s", errUsage, usage)
}

// newFlagSet creates a command flag set that reports errors instead of
// exiting and prints nothing on its own.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	return fs
}

// expandPath resolves a leading ~ in a user-supplied path.
func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

func (e *Env) runAdd(args []string) error {
	const usage = "Usage: prj add [path] [--name NAME]"
	fs := newFlagSet("add")
	name := fs.String("name", "", "display name for the project")
	if err := fs.Parse(args); err != nil || fs.NArg() > 1 {
		return usageError(usage)
	}

	path := fs.Arg(0)
	if path == "" {
		cwd, err := e.Getwd()
		if err != nil {
			return fmt.Errorf("could not get current directory: %w", err)
		}
		path = cwd
	}

	return e.update(func(reg *registry.Registry) error {
		p, err := reg.Register(expandPath(path), *name)
		if err != nil {
			return err
		}
		e.logger("cli").Info("registered project", "name", p.Name, "path", p.Path)
		e.status("Added project: %s (%s)", p.Name, p.Path)
		return nil
	})
}

func (e *Env) runScan(args []string) error {
	const usage = "Usage: prj scan <dir> [--depth N]"
	fs := newFlagSet("scan")
	depth := fs.Int("depth", e.Config.ScanDepth, "maximum directory depth to scan")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 || *depth < 0 {
		return usageError(usage)
	}

	dir, err := registry.Canonicalize(expandPath(fs.Arg(0)))
	if err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", registry.ErrNotADirectory, dir)
	}

	found := discovery.NewScanner(e.logger("scan")).Scan(dir, *depth)

	return e.update(func(reg *registry.Registry) error {
		added := 0
		for _, path := range found {
			p, err := reg.Register(path, "")
			switch {
			case err == nil:
				e.status("  + %s", p.Name)
				added++
			case errors.Is(err, registry.ErrDuplicatePath):
			default:
				e.status("  ! %s: %v", path, err)
			}
		}
		e.logger("cli").Info("scan complete", "root", dir, "found", len(found), "added", added)
		e.status("Scan complete: found %d projects, added %d new", len(found), added)
		return nil
	})
}

func (e *Env) runRemove(args []string) error {
	const usage = "Usage: prj remove <project>"
	if len(args) != 1 {
		return usageError(usage)
	}

	return e.update(func(reg *registry.Registry) error {
		removed, err := reg.Remove(args[0])
		if err != nil {
			return err
		}
		e.logger("cli").Info("removed project", "name", removed.Name, "path", removed.Path)
		e.status("Removed project: %s (%s)", removed.Name, removed.Path)
		return nil
	})
}

func (e *Env) runInit(args []string) error {
	const usage = "Usage: prj init <shell> [--cmd NAME]"
	fs := newFlagSet("init")
	cmd := fs.String("cmd", e.Config.ShellCmd, "name of the shell function to create")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usageError(usage)
	}

	script, err := shell.Generate(fs.Arg(0), *cmd, "")
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(e.Stdout, script)
	return err
}

func (e *Env) runTag(args []string) error {
	if len(args) < 2 {
		return usageError("Usage: prj tag <project> <tag>...")
	}
	name, tags := args[0], args[1:]

	return e.update(func(reg *registry.Registry) error {
		if err := reg.AddTags(name, tags); err != nil {
			return err
		}
		p, _ := reg.Find(name)
		e.status("Tags for %s: %s", p.Name, strings.Join(p.Tags, ", "))
		return nil
	})
}

func (e *Env) runUntag(args []string) error {
	if len(args) < 2 {
		return usageError("Usage: prj untag <project> <tag>...")
	}
	name, tags := args[0], args[1:]

	return e.update(func(reg *registry.Registry) error {
		if err := reg.RemoveTags(name, tags); err != nil {
			return err
		}
		p, _ := reg.Find(name)
		display := strings.Join(p.Tags, ", ")
		if display == "" {
			display = "(none)"
		}
		e.status("Tags for %s: %s", p.Name, display)
		return nil
	})
}

func (e *Env) runGC(args []string) error {
	const usage = "Usage: prj gc [--dry-run] [--yes]"
	fs := newFlagSet("gc")
	dryRun := fs.Bool("dry-run", false, "only show what would be removed")
	yes := fs.BoolP("yes", "y", false, "remove without asking")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return usageError(usage)
	}

	return e.update(func(reg *registry.Registry) error {
		orphaned := reg.FindOrphaned()
		if len(orphaned) == 0 {
			e.status("No orphaned projects found.")
			return errUnchanged
		}

		e.status("Orphaned projects (path no longer exists):")
		for _, p := range orphaned {
			e.status("  %s (%s)", p.Name, p.Path)
		}

		if *dryRun {
			e.status("\nDry run: %d projects would be removed.", len(orphaned))
			return errUnchanged
		}

		if !*yes {
			fmt.Fprintf(e.Stderr, "\nRemove %d orphaned projects? [y/N] ", len(orphaned))
			answer, _ := bufio.NewReader(e.Stdin).ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				e.status("Cancelled.")
				return errUnchanged
			}
		}

		// Re-evaluated here: paths may have reappeared while we waited.
		removed := reg.RemoveOrphaned()
		e.logger("cli").Info("removed orphaned projects", "count", len(removed))
		e.status("Removed %d orphaned projects.", len(removed))
		return nil
	})
}
