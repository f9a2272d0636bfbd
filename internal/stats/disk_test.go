package stats

import (
	"strings"
	"testing"
)

func TestDiskUsage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.rs", strings.Repeat("a", 100))
	writeFile(t, root, "target/debug/app", strings.Repeat("b", 1000))
	writeFile(t, root, "target/release/app", strings.Repeat("c", 500))
	writeFile(t, root, "dist/bundle.js", strings.Repeat("d", 10))

	ds := DiskUsage(root, []string{"target"})

	if ds.TotalBytes != 1610 {
		t.Errorf("TotalBytes = %d, want 1610", ds.TotalBytes)
	}
	if ds.ArtifactBytes != 1500 {
		t.Errorf("ArtifactBytes = %d, want 1500", ds.ArtifactBytes)
	}
}

func TestDiskUsage_ArtifactMatchesTopLevelOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/target/file", strings.Repeat("x", 42))

	ds := DiskUsage(root, []string{"target"})

	if ds.TotalBytes != 42 || ds.ArtifactBytes != 0 {
		t.Errorf("DiskUsage() = %+v, want total 42 artifact 0", ds)
	}
}

func TestDirSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a", "12345")
	writeFile(t, root, "b/c", "678")

	if got := DirSize(root); got != 8 {
		t.Errorf("DirSize() = %d, want 8", got)
	}
	if got := DirSize(root + "/missing"); got != 0 {
		t.Errorf("DirSize(missing) = %d, want 0", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1500, "1.5 kB"},
		{12_000_000, "12 MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
