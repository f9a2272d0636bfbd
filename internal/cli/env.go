// pattern: Imperative Shell
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"prj/internal/config"
	"prj/internal/gitstatus"
	"prj/internal/logging"
	"prj/internal/process"
	"prj/internal/registry"
	"prj/internal/tui"
)

// Env carries the configuration and I/O every command runs against. It is
// built once in main and passed to BuildApp.
type Env struct {
	Config config.Config
	Logs   logging.LoggerProvider

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal reports whether stdout is an interactive terminal.
	IsTerminal func() bool
	Getwd      func() (string, error)
	Git        gitstatus.Runner
	// Exec runs a foreground child process such as git clone.
	Exec func(ctx context.Context, spec process.Spec) (int, error)

	RunPicker func(projects []registry.Project, theme string) (string, bool, error)
	RunList   func(reg *registry.Registry, deps tui.ListDeps) (string, bool, error)
}

// NewEnv wires an Env to the real process environment.
func NewEnv(cfg config.Config, logs logging.LoggerProvider) *Env {
	e := &Env{
		Config: cfg,
		Logs:   logs,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		IsTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		Getwd: os.Getwd,
		Git:   gitstatus.ExecRunner,
		RunPicker: func(projects []registry.Project, theme string) (string, bool, error) {
			return tui.RunPicker(projects, theme, os.Stderr)
		},
		RunList: func(reg *registry.Registry, deps tui.ListDeps) (string, bool, error) {
			return tui.RunList(reg, deps, os.Stderr)
		},
	}
	e.Exec = func(ctx context.Context, spec process.Spec) (int, error) {
		return e.runner().Run(ctx, spec)
	}
	return e
}

// logger returns the scoped logger for scope, or a no-op logger when the
// Env has no provider.
func (e *Env) logger(scope string) *logging.ScopedLogger {
	if e.Logs == nil {
		return logging.NopLogger()
	}
	return e.Logs.For(scope)
}

func (e *Env) store() *registry.Store {
	return registry.NewStore(e.Config.DatabasePath)
}

// load reads the registry for a read-only command.
func (e *Env) load() (*registry.Registry, error) {
	return e.store().Load()
}

// errUnchanged lets an update callback finish without saving.
var errUnchanged = errors.New("registry unchanged")

// update loads the registry under the session lock, applies fn and saves
// the result. Nothing is written when fn fails or returns errUnchanged.
func (e *Env) update(fn func(reg *registry.Registry) error) error {
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
	if err := fn(reg); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	if err := store.Save(reg); err != nil {
		return err
	}
	e.logger("registry").Debug("saved registry", "path", store.Path(), "projects", reg.Len())
	return nil
}

func (e *Env) gitCollector() *gitstatus.Collector {
	return gitstatus.NewCollectorWithRunner(e.Git, e.logger("git"))
}

func (e *Env) runner() *process.Runner {
	return process.NewRunner(e.logger("process"))
}

// workers bounds parallel collection; zero means one worker.
func (e *Env) workers() int {
	if e.Config.Workers < 1 {
		return 1
	}
	return e.Config.Workers
}

// status prints a progress or result line to stderr, keeping stdout for
// machine-readable output.
func (e *Env) status(format string, args ...any) {
	fmt.Fprintf(e.Stderr, format+"\n", args...)
}

// printJSON writes v to stdout as indented JSON.
func (e *Env) printJSON(v any) error {
	encoder := json.NewEncoder(e.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
