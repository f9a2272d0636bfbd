package stats

import (
	"context"
	"testing"

	"prj/internal/gitstatus"
	"prj/internal/registry"
)

type fakeGit map[string]*gitstatus.Status

func (f fakeGit) Collect(_ context.Context, path string) *gitstatus.Status {
	return f[path]
}

func TestCollectProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "target/out", "xxxx")

	git := fakeGit{root: {Branch: "main", Changed: 1}}
	ps := NewCollector(git, nil).CollectProject(context.Background(), registry.Project{
		Name:         "demo",
		Path:         root,
		ArtifactDirs: []string{"target"},
	})

	if ps.Name != "demo" || ps.Path != root {
		t.Errorf("identity = %q %q", ps.Name, ps.Path)
	}
	if ps.Git == nil || ps.Git.Branch != "main" {
		t.Errorf("Git = %+v", ps.Git)
	}
	if ps.Loc.TotalCode != 1 {
		t.Errorf("TotalCode = %d, want 1", ps.Loc.TotalCode)
	}
	if ps.Disk.ArtifactBytes != 4 {
		t.Errorf("ArtifactBytes = %d, want 4", ps.Disk.ArtifactBytes)
	}
}

func TestCollectOverview(t *testing.T) {
	a, b, c := t.TempDir(), t.TempDir(), t.TempDir()
	writeFile(t, a, "a.go", "package a\nvar A = 1\n")
	writeFile(t, b, "b.py", "x = 1\n")
	writeFile(t, b, "dist/x.js", "12345")

	git := fakeGit{
		a: {Branch: "main", Untracked: 2},
		b: {Branch: "main"},
	}
	projects := []registry.Project{
		{Name: "a", Path: a},
		{Name: "b", Path: b, ArtifactDirs: []string{"dist"}},
		{Name: "c", Path: c},
	}

	ov := NewCollector(git, nil).CollectOverview(context.Background(), projects, 2)

	if ov.TotalProjects != 3 {
		t.Errorf("TotalProjects = %d, want 3", ov.TotalProjects)
	}
	if ov.TotalCodeLines != 3 {
		t.Errorf("TotalCodeLines = %d, want 3", ov.TotalCodeLines)
	}
	if ov.TotalArtifactBytes != 5 {
		t.Errorf("TotalArtifactBytes = %d, want 5", ov.TotalArtifactBytes)
	}
	if ov.DirtyProjects != 1 {
		t.Errorf("DirtyProjects = %d, want 1", ov.DirtyProjects)
	}
	for i, want := range []string{"a", "b", "c"} {
		if ov.Projects[i].Name != want {
			t.Errorf("Projects[%d] = %q, want %q", i, ov.Projects[i].Name, want)
		}
	}
}
