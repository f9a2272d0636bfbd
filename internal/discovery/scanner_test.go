package discovery

import (
	"path/filepath"
	"slices"
	"testing"

	"prj/internal/logging"
)

func TestScan_PrunesNestedProjects(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "p/Cargo.toml", "p/sub/package.json")

	found := NewScanner(nil).Scan(root, 3)

	want := []string{filepath.Join(root, "p")}
	if !slices.Equal(found, want) {
		t.Errorf("Scan() = %v, want %v", found, want)
	}
}

func TestScan_PrunesNestedGitRepos(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "outer/.git", "outer/vendor/inner/.git")

	found := NewScanner(nil).Scan(root, 5)

	want := []string{filepath.Join(root, "outer")}
	if !slices.Equal(found, want) {
		t.Errorf("Scan() = %v, want %v", found, want)
	}
}

func TestScan_DepthBound(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a/b/c/go.mod")

	tests := []struct {
		maxDepth int
		want     int
	}{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 1},
		{4, 1},
	}

	for _, tt := range tests {
		found := NewScanner(nil).Scan(root, tt.maxDepth)
		if len(found) != tt.want {
			t.Errorf("Scan(maxDepth=%d) found %v, want %d results", tt.maxDepth, found, tt.want)
		}
	}
}

func TestScan_SkipsArtifactAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"node_modules/dep/package.json",
		"target/thing/Cargo.toml",
		".cache/tool/go.mod",
		"real/go.mod",
	)

	found := NewScanner(nil).Scan(root, 4)

	want := []string{filepath.Join(root, "real")}
	if !slices.Equal(found, want) {
		t.Errorf("Scan() = %v, want %v", found, want)
	}
}

func TestScan_RootIsProject(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "Makefile", "child/go.mod")

	found := NewScanner(nil).Scan(root, 3)

	if !slices.Equal(found, []string{root}) {
		t.Errorf("Scan() = %v, want [%s]", found, root)
	}
}

func TestScan_HiddenRootIsTraversed(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, ".workspace")
	touch(t, root, "app/go.mod")

	found := NewScanner(nil).Scan(root, 2)

	want := []string{filepath.Join(root, "app")}
	if !slices.Equal(found, want) {
		t.Errorf("Scan() = %v, want %v", found, want)
	}
}

func TestScan_PreOrder(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b/go.mod", "a/group/x/Cargo.toml", "a/group/y/Cargo.toml", "c/pom.xml")

	found := NewScanner(nil).Scan(root, 3)

	want := []string{
		filepath.Join(root, "a", "group", "x"),
		filepath.Join(root, "a", "group", "y"),
		filepath.Join(root, "b"),
		filepath.Join(root, "c"),
	}
	if !slices.Equal(found, want) {
		t.Errorf("Scan() = %v, want %v", found, want)
	}
}

func TestScan_IgnoresFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "notadir")

	if found := NewScanner(nil).Scan(root, 2); len(found) != 0 {
		t.Errorf("Scan() = %v, want none", found)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	if found := NewScanner(nil).Scan("/nonexistent/path", 3); len(found) != 0 {
		t.Errorf("Scan() = %v, want none", found)
	}
}

func TestScan_LogsFoundRoots(t *testing.T) {
	lm := logging.NewTestLogManager(10)
	defer func() { _ = lm.Close() }()

	root := t.TempDir()
	touch(t, root, "p/go.mod")

	NewScanner(lm.For("scan")).Scan(root, 2)

	select {
	case entry := <-lm.Channel():
		if entry.Scope != "scan" || entry.Message != "found project root" {
			t.Errorf("unexpected entry: %+v", entry)
		}
	default:
		t.Error("expected a log entry for the found root")
	}
}

func TestIsStrictDescendant(t *testing.T) {
	tests := []struct {
		ancestor, path string
		want           bool
	}{
		{"/a/b", "/a/b/c", true},
		{"/a/b", "/a/b", false},
		{"/a/b", "/a/bc", false},
		{"/a/b", "/a", false},
	}
	for _, tt := range tests {
		if got := isStrictDescendant(tt.ancestor, tt.path); got != tt.want {
			t.Errorf("isStrictDescendant(%q, %q) = %v, want %v", tt.ancestor, tt.path, got, tt.want)
		}
	}
}
