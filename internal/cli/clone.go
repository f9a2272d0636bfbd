// pattern: Imperative Shell
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/shlex"

	"prj/internal/process"
	"prj/internal/registry"
)

var (
	// ErrCloneDestUnknown means the clone destination could not be inferred
	// from the clone arguments.
	ErrCloneDestUnknown = errors.New("could not determine clone destination")
	// ErrCloneFailed means git clone could not run or exited non-zero.
	ErrCloneFailed = errors.New("git clone failed")
)

// cloneValueFlags are git clone options whose value is the next argument.
var cloneValueFlags = []string{
	"-b", "--branch",
	"-o", "--origin",
	"-c", "--config",
	"-u", "--upload-pack",
	"-j", "--jobs",
	"--depth",
	"--reference",
	"--reference-if-able",
	"--separate-git-dir",
	"--template",
	"--filter",
	"--shallow-since",
	"--shallow-exclude",
	"--server-option",
	"--bundle-uri",
}

// cloneDest infers where git clone will create the repository: the last
// positional argument when a directory is given, otherwise the repository
// name from the URL under cwd.
func cloneDest(args []string, cwd string) (string, error) {
	var positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "-") {
			if slices.Contains(cloneValueFlags, a) {
				i++
			}
			continue
		}
		positional = append(positional, a)
	}

	switch len(positional) {
	case 0:
		return "", fmt.Errorf("%w: no URL provided", ErrCloneDestUnknown)
	case 1:
		url := strings.TrimRight(positional[0], "/")
		name := url[strings.LastIndex(url, "/")+1:]
		name = strings.TrimSuffix(name, ".git")
		if name == "" {
			return "", fmt.Errorf("%w: %s", ErrCloneDestUnknown, positional[0])
		}
		return filepath.Join(cwd, name), nil
	default:
		dest := positional[len(positional)-1]
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(cwd, dest)
		}
		return dest, nil
	}
}

// gitClone runs git clone with args in dir, attached to the terminal.
func (e *Env) gitClone(ctx context.Context, dir string, args ...string) error {
	code, err := e.Exec(ctx, process.Spec{
		Dir:    dir,
		Name:   "git",
		Args:   append([]string{"clone"}, args...),
		Stdin:  e.Stdin,
		Stdout: e.Stderr,
		Stderr: e.Stderr,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCloneFailed, err)
	}
	if code != 0 {
		return fmt.Errorf("%w: exit status %d", ErrCloneFailed, code)
	}
	return nil
}

func (e *Env) runNew(args []string) error {
	const usage = "Usage: prj new --git \"<clone arguments>\""
	fs := newFlagSet("new")
	gitArgs := fs.String("git", "", "git clone arguments")
	if err := fs.Parse(args); err != nil || *gitArgs == "" || fs.NArg() != 0 {
		return usageError(usage)
	}

	cloneArgs, err := shlex.Split(*gitArgs)
	if err != nil {
		return fmt.Errorf("%w: failed to parse args: %w", ErrCloneFailed, err)
	}
	cwd, err := e.Getwd()
	if err != nil {
		return fmt.Errorf("could not get current directory: %w", err)
	}
	dest, err := cloneDest(cloneArgs, cwd)
	if err != nil {
		return err
	}

	if err := e.gitClone(context.Background(), cwd, cloneArgs...); err != nil {
		return err
	}

	return e.update(func(reg *registry.Registry) error {
		p, err := reg.Register(dest, "")
		if err != nil {
			return err
		}
		e.logger("cli").Info("registered clone", "name", p.Name, "path", p.Path)
		e.status("Registered: %s (%s)", p.Name, p.Path)
		return nil
	})
}
