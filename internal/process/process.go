// pattern: Imperative Shell

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/shlex"

	"prj/internal/logging"
)

// defaultEditor is used when neither the config nor the environment names one.
const defaultEditor = "vi"

// Spec describes a foreground child process.
type Spec struct {
	Dir    string
	Name   string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner starts child processes and logs their lifecycle.
type Runner struct {
	logger *logging.ScopedLogger
	goos   string
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *logging.ScopedLogger) *Runner {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Runner{logger: logger, goos: runtime.GOOS}
}

// Run executes spec in the foreground and waits for it. The exit code is
// returned with a nil error when the process ran; the error is set only
// when it could not be started.
func (r *Runner) Run(ctx context.Context, spec Spec) (int, error) {
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr

	r.logger.Info("starting process", "binary", spec.Name, "args", fmt.Sprintf("%v", spec.Args), "dir", spec.Dir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			r.logger.Warn("process exited", "binary", spec.Name, "exit_code", code)
			return code, nil
		}
		r.logger.Error("failed to start process", "binary", spec.Name, "error", err)
		return -1, err
	}

	r.logger.Info("process exited cleanly", "binary", spec.Name)
	return 0, nil
}

// RunShell runs command through the platform shell in dir.
func (r *Runner) RunShell(ctx context.Context, dir, command string, stdout, stderr io.Writer) (int, error) {
	name, args := ShellCommand(r.goos, command)
	return r.Run(ctx, Spec{
		Dir:    dir,
		Name:   name,
		Args:   args,
		Stdin:  os.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	})
}

// OpenFileManager launches the platform file manager on path without
// waiting for it. The child is reaped in the background.
func (r *Runner) OpenFileManager(path string) error {
	name := FileManager(r.goos)
	cmd := exec.Command(name, path)
	if err := cmd.Start(); err != nil {
		r.logger.Warn("failed to open file manager", "binary", name, "error", err)
		return err
	}
	r.logger.Debug("opened file manager", "binary", name, "path", path, "pid", cmd.Process.Pid)
	go func() {
		if err := cmd.Wait(); err != nil {
			r.logger.Debug("file manager exited", "binary", name, "error", err)
		}
	}()
	return nil
}

// ShellCommand returns the program and arguments that run command through
// the platform shell.
func ShellCommand(goos, command string) (string, []string) {
	if goos == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "sh", []string{"-c", command}
}

// FileManager returns the program that opens a directory in the platform
// file manager.
func FileManager(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// ResolveEditor picks the editor command line: the configured value, then
// $VISUAL, then $EDITOR, then vi.
func ResolveEditor(configured string, getenv func(string) string) string {
	if configured != "" {
		return configured
	}
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return defaultEditor
}

// EditorCommand builds the command that opens path in the resolved editor.
// The editor value may carry arguments ("code --wait") and is split with
// shell quoting rules.
func EditorCommand(configured, path string) (*exec.Cmd, error) {
	line := ResolveEditor(configured, os.Getenv)
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("invalid editor %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("invalid editor %q: empty command", line)
	}
	return exec.Command(argv[0], append(argv[1:], path)...), nil
}
