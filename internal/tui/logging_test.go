package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"prj/internal/logging"
)

func TestList_LogsRemoval(t *testing.T) {
	lm := logging.NewTestLogManager(20)
	defer func() { _ = lm.Close() }()

	deps := ListDeps{Store: &fakeStore{}, Logger: lm.For("tui")}
	m := NewList(newTestRegistry(t, project("a"), project("b")), deps)

	keys := []tea.KeyMsg{key(tea.KeyEnter)}
	for range 10 {
		keys = append(keys, key(tea.KeyDown))
	}
	keys = append(keys, key(tea.KeyEnter), runes("y"))
	press(t, m, keys...)

	for {
		select {
		case entry := <-lm.Channel():
			if entry.Message != "removed project" {
				continue
			}
			if entry.Scope != "tui" {
				t.Errorf("scope = %q, want tui", entry.Scope)
			}
			if entry.Fields["name"] != "a" {
				t.Errorf("fields = %v, want name=a", entry.Fields)
			}
			return
		default:
			t.Fatal("expected a log entry for the removal")
		}
	}
}

func TestNewList_NilLoggerIsSafe(t *testing.T) {
	m := NewList(newTestRegistry(t, project("a")), ListDeps{})
	if m.logger == nil {
		t.Fatal("logger should default to a no-op logger")
	}
	// Exercise a logging path without a manager.
	m.Update(key(tea.KeyEnter))
}
