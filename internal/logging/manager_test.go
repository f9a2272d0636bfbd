// pattern: Imperative Shell

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestManager(t *testing.T, level string) (*Manager, string) {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "prj.log")
	mgr, err := NewManager(Config{FilePath: logFile, Level: level, EchoBuffer: 100})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return mgr, logFile
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return string(data)
}

func TestConfig_WithDefaults(t *testing.T) {
	got := Config{FilePath: "x", MaxBackups: 9}.withDefaults()
	want := Config{FilePath: "x", MaxSizeMB: 5, MaxBackups: 9, MaxAgeDays: 14, EchoBuffer: 256}
	if got != want {
		t.Errorf("withDefaults() = %+v, want %+v", got, want)
	}
}

func TestNewManager_RequiresFilePath(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Error("NewManager() without FilePath should fail")
	}
}

func TestNewManager_CreatesLogDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "data", "prj.log")

	mgr, err := NewManager(Config{FilePath: logFile})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	if _, err := os.Stat(filepath.Dir(logFile)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestManager_For_CachesPerScope(t *testing.T) {
	mgr, _ := newTestManager(t, "debug")
	defer func() { _ = mgr.Close() }()

	registry := mgr.For("registry")
	if registry != mgr.For("registry") {
		t.Error("For() should return the cached logger for the same scope")
	}
	if registry == mgr.For("scan") {
		t.Error("For() should return distinct loggers for distinct scopes")
	}
	if registry.Scope() != "registry" {
		t.Errorf("Scope() = %q, want registry", registry.Scope())
	}
}

func TestManager_WritesFileAndEcho(t *testing.T) {
	mgr, logFile := newTestManager(t, "debug")

	mgr.For("registry.store").Info("saved registry", "projects", 3)
	_ = mgr.Sync()

	select {
	case entry := <-mgr.Entries():
		if entry.Message != "saved registry" || entry.Scope != "registry.store" {
			t.Errorf("entry = %+v", entry)
		}
		if entry.Fields["projects"] != float64(3) {
			t.Errorf("Fields = %v, want projects=3", entry.Fields)
		}
	default:
		t.Fatal("entry not echoed after Sync()")
	}

	_ = mgr.Close()
	content := readLog(t, logFile)
	for _, want := range []string{`"msg":"saved registry"`, `"logger":"registry.store"`, `"projects":3`} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %s:\n%s", want, content)
		}
	}
}

func TestManager_LevelFiltersDebug(t *testing.T) {
	mgr, logFile := newTestManager(t, "info")

	logger := mgr.For("scan")
	logger.Debug("hidden detail")
	logger.Warn("unreadable directory", "path", "/srv/locked")
	_ = mgr.Close()

	content := readLog(t, logFile)
	if strings.Contains(content, "hidden detail") {
		t.Errorf("debug entry written at info level: %s", content)
	}
	if !strings.Contains(content, "unreadable directory") {
		t.Errorf("warn entry missing: %s", content)
	}
}

func TestManager_CloseEndsEcho(t *testing.T) {
	mgr, _ := newTestManager(t, "info")
	_ = mgr.Close()

	if _, ok := <-mgr.Entries(); ok {
		t.Error("Entries() should be closed after Close()")
	}
}

func TestScopedLogger_With(t *testing.T) {
	lm := NewTestLogManager(10)
	defer func() { _ = lm.Close() }()

	lm.For("cli").With("command", "scan").Info("scan complete", "added", 2)

	entry := <-lm.Channel()
	if entry.Fields["command"] != "scan" || entry.Fields["added"] != float64(2) {
		t.Errorf("Fields = %v, want command and added", entry.Fields)
	}
	if entry.Scope != "cli" {
		t.Errorf("Scope = %q, want cli", entry.Scope)
	}
}

func TestScopedLogger_NilIsSafe(t *testing.T) {
	var logger *ScopedLogger
	logger.Info("ignored")
	if logger.With("k", "v") != nil {
		t.Error("With() on a nil logger should stay nil")
	}
}
