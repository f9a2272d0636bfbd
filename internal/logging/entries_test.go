// pattern: Functional Core

package logging

import (
	"testing"
	"time"
)

func TestLogEntry_String(t *testing.T) {
	at := time.Date(2026, 1, 27, 10, 30, 0, 250_000_000, time.Local)
	tests := []struct {
		name  string
		entry LogEntry
		want  string
	}{
		{
			name:  "no fields",
			entry: LogEntry{Timestamp: at, Level: "INFO", Scope: "app", Message: "starting"},
			want:  "10:30:00.250 INFO  app: starting",
		},
		{
			name: "fields sorted by key",
			entry: LogEntry{
				Timestamp: at,
				Level:     "ERROR",
				Scope:     "registry.store",
				Message:   "save failed",
				Fields:    map[string]any{"path": "/data/projects.toml", "error": "permission denied"},
			},
			want: "10:30:00.250 ERROR registry.store: save failed error=permission denied path=/data/projects.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogEntry_MatchesScope(t *testing.T) {
	tests := []struct {
		scope  string
		prefix string
		want   bool
	}{
		{"registry.store", "", true},
		{"registry.store", "registry.store", true},
		{"registry.store.lock", "registry", true},
		{"registry.store", "registry.st", false},
		{"registrar", "registry", false},
		{"tui", "registry", false},
	}

	for _, tt := range tests {
		entry := LogEntry{Scope: tt.scope}
		if got := entry.MatchesScope(tt.prefix); got != tt.want {
			t.Errorf("Scope %q MatchesScope(%q) = %v, want %v", tt.scope, tt.prefix, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"DEBUG":   "DEBUG",
		"info":    "INFO",
		"Warn":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"fatal":   "INFO",
		"":        "INFO",
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
