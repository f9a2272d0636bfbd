package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"prj/internal/registry"
)

func pickerProjects() []registry.Project {
	return []registry.Project{
		{Name: "backend", Path: "/work/backend"},
		{Name: "prj", Path: "/work/prj", Tags: []string{"rust"}},
		{Name: "dotfiles", Path: "/home/me/dotfiles"},
	}
}

func TestPicker_EmptyQueryListsEverything(t *testing.T) {
	m := NewPicker(pickerProjects(), "mocha")

	if len(m.filtered) != 3 {
		t.Fatalf("filtered = %d, want 3", len(m.filtered))
	}
	for i, fm := range m.filtered {
		if fm.Index != i {
			t.Errorf("filtered[%d].Index = %d, want original order", i, fm.Index)
		}
	}
}

func TestPicker_TypingFiltersAndResetsSelection(t *testing.T) {
	m := NewPicker(pickerProjects(), "mocha")
	m.selected = 2

	updated, _ := m.Update(runes("p"))
	p := updated.(Picker)
	if p.Query() != "p" {
		t.Errorf("Query() = %q, want p", p.Query())
	}
	if p.selected != 0 {
		t.Errorf("selected = %d, want reset to 0", p.selected)
	}

	updated, _ = press(t, updated, runes("r"), runes("j"))
	p = updated.(Picker)
	if len(p.filtered) != 1 || p.projects[p.filtered[0].Index].Name != "prj" {
		t.Errorf("filtered = %+v, want only prj", p.filtered)
	}
}

func TestPicker_Backspace(t *testing.T) {
	m := NewPicker(pickerProjects(), "mocha")

	updated, _ := press(t, m, runes("x"), runes("y"), runes("z"))
	if n := len(updated.(Picker).filtered); n != 0 {
		t.Fatalf("filtered = %d, want 0", n)
	}

	updated, _ = press(t, updated, key(tea.KeyBackspace), key(tea.KeyBackspace), key(tea.KeyBackspace))
	p := updated.(Picker)
	if p.Query() != "" || len(p.filtered) != 3 {
		t.Errorf("query %q with %d results, want empty query listing all", p.Query(), len(p.filtered))
	}

	// Backspace on an empty query is a no-op.
	updated, _ = updated.Update(key(tea.KeyBackspace))
	if updated.(Picker).Query() != "" {
		t.Error("backspace on empty query should keep it empty")
	}
}

func TestPicker_NavigationClamped(t *testing.T) {
	m := NewPicker(pickerProjects(), "mocha")

	updated, _ := press(t, m, key(tea.KeyUp))
	if got := updated.(Picker).selected; got != 0 {
		t.Errorf("selected = %d, want 0", got)
	}

	updated, _ = press(t, updated, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown))
	if got := updated.(Picker).selected; got != 2 {
		t.Errorf("selected = %d, want 2", got)
	}
}

func TestPicker_EnterYieldsSelectedPath(t *testing.T) {
	m := NewPicker(pickerProjects(), "mocha")

	updated, cmd := press(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	if !isQuit(cmd) {
		t.Fatal("Enter should quit")
	}
	path, ok := updated.(Picker).Result()
	if !ok || path != "/work/prj" {
		t.Errorf("Result() = %q, %v; want /work/prj, true", path, ok)
	}
}

func TestPicker_EnterWithNoMatches(t *testing.T) {
	m := NewPicker(pickerProjects(), "mocha")

	updated, cmd := press(t, m, runes("q"), runes("q"), key(tea.KeyEnter))
	if !isQuit(cmd) {
		t.Fatal("Enter should quit")
	}
	if _, ok := updated.(Picker).Result(); ok {
		t.Error("no match should yield no result")
	}
}

func TestPicker_Cancel(t *testing.T) {
	for _, k := range []tea.KeyMsg{key(tea.KeyEscape), key(tea.KeyCtrlC)} {
		t.Run(k.String(), func(t *testing.T) {
			updated, cmd := NewPicker(pickerProjects(), "mocha").Update(k)
			if !isQuit(cmd) {
				t.Error("expected quit")
			}
			if _, ok := updated.(Picker).Result(); ok {
				t.Error("cancel should yield no result")
			}
		})
	}
}

func TestPicker_RunesAreNotCommands(t *testing.T) {
	// q and j are search text in the picker, not quit or navigation.
	updated, cmd := press(t, NewPicker(pickerProjects(), "mocha"), runes("q"), runes("j"))
	if isQuit(cmd) {
		t.Error("q should not quit the picker")
	}
	if got := updated.(Picker).Query(); got != "qj" {
		t.Errorf("Query() = %q, want qj", got)
	}
}

func TestPicker_View(t *testing.T) {
	m := NewPicker(pickerProjects(), "mocha")
	updated, _ := press(t, m, runes("p"), runes("r"), runes("j"))
	updated, _ = updated.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	view := updated.View()
	for _, want := range []string{"prj", "/work/prj", "rust", "1/3", "Enter: select"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "dotfiles") {
		t.Error("view should not list filtered-out projects")
	}
}
