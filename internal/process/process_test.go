package process

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"prj/internal/logging"
)

func testLogger(t *testing.T) *logging.ScopedLogger {
	t.Helper()
	lm := logging.NewTestLogManager(100)
	t.Cleanup(func() { _ = lm.Close() })
	return lm.For("test")
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRunner_RunExitCodes(t *testing.T) {
	skipOnWindows(t)
	r := NewRunner(testLogger(t))

	tests := []struct {
		command string
		want    int
	}{
		{"true", 0},
		{"false", 1},
		{"exit 3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			code, err := r.RunShell(context.Background(), t.TempDir(), tt.command, nil, nil)
			if err != nil {
				t.Fatalf("RunShell() error: %v", err)
			}
			if code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestRunner_RunShellUsesDir(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	var out bytes.Buffer

	if _, err := NewRunner(nil).RunShell(context.Background(), dir, "pwd", &out, nil); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestRunner_RunMissingBinary(t *testing.T) {
	code, err := NewRunner(nil).Run(context.Background(), Spec{Name: "prj-definitely-not-a-binary"})
	if err == nil {
		t.Fatal("Run() should fail for a missing binary")
	}
	if code != -1 {
		t.Errorf("exit code = %d, want -1", code)
	}
}

func TestShellCommand(t *testing.T) {
	name, args := ShellCommand("linux", "make test")
	if name != "sh" || !slices.Equal(args, []string{"-c", "make test"}) {
		t.Errorf("linux = %s %v", name, args)
	}
	name, args = ShellCommand("windows", "dir")
	if name != "cmd" || !slices.Equal(args, []string{"/C", "dir"}) {
		t.Errorf("windows = %s %v", name, args)
	}
}

func TestFileManager(t *testing.T) {
	tests := map[string]string{
		"darwin":  "open",
		"windows": "explorer",
		"linux":   "xdg-open",
		"freebsd": "xdg-open",
	}
	for goos, want := range tests {
		if got := FileManager(goos); got != want {
			t.Errorf("FileManager(%s) = %q, want %q", goos, got, want)
		}
	}
}

func TestResolveEditor(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	tests := []struct {
		name       string
		configured string
		env        map[string]string
		want       string
	}{
		{"configured wins", "hx", map[string]string{"VISUAL": "code", "EDITOR": "nano"}, "hx"},
		{"visual before editor", "", map[string]string{"VISUAL": "code", "EDITOR": "nano"}, "code"},
		{"editor", "", map[string]string{"EDITOR": "nano"}, "nano"},
		{"fallback", "", nil, "vi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveEditor(tt.configured, env(tt.env)); got != tt.want {
				t.Errorf("ResolveEditor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditorCommand_SplitsArguments(t *testing.T) {
	cmd, err := EditorCommand(`code --wait --reuse-window`, "/tmp/my project")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"code", "--wait", "--reuse-window", "/tmp/my project"}
	if !slices.Equal(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestEditorCommand_FromEnvironment(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", `"my editor" -n`)

	cmd, err := EditorCommand("", "/src")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"my editor", "-n", "/src"}
	if !slices.Equal(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestEditorCommand_Invalid(t *testing.T) {
	if _, err := EditorCommand(`"unterminated`, "/src"); err == nil {
		t.Error("expected an error for unbalanced quotes")
	}
}
