package tui

import (
	"slices"
	"testing"

	"prj/internal/registry"
)

func TestMenuFor(t *testing.T) {
	tests := []struct {
		name    string
		project registry.Project
		want    []Action
	}{
		{
			name:    "no artifacts",
			project: registry.Project{Name: "notes"},
			want:    []Action{ActionViewStats, ActionOpenEditor, ActionOpenExplorer, ActionCd, ActionRemove},
		},
		{
			name:    "with artifacts",
			project: registry.Project{Name: "tool", ArtifactDirs: []string{"target"}},
			want:    []Action{ActionViewStats, ActionClean, ActionOpenEditor, ActionOpenExplorer, ActionCd, ActionRemove},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MenuFor(tt.project); !slices.Equal(got, tt.want) {
				t.Errorf("MenuFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAction_Label(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionViewStats, "View stats"},
		{ActionClean, "Clean artifacts"},
		{ActionOpenEditor, "Open in editor"},
		{ActionOpenExplorer, "Open in explorer"},
		{ActionCd, "cd to project"},
		{ActionRemove, "Remove"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.action.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAction_DescriptionSetForMenuActions(t *testing.T) {
	for _, a := range MenuFor(registry.Project{ArtifactDirs: []string{"build"}}) {
		if a.Description() == "" {
			t.Errorf("%s has no description", a.Label())
		}
	}
}
