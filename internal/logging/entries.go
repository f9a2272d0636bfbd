// pattern: Functional Core

package logging

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// LogEntry is one entry decoded back from the JSON encoder, used to echo
// logs to a terminal and to assert on them in tests.
type LogEntry struct {
	Timestamp time.Time
	Level     string // DEBUG, INFO, WARN or ERROR
	Scope     string // dotted scope, e.g. "registry.store"
	Message   string
	Fields    map[string]any
}

// String renders the entry on one line with fields in key order:
//
//	10:30:00.250 WARN  scan: unreadable directory path=/x error=...
func (e LogEntry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %-5s %s: %s", e.Timestamp.Format("15:04:05.000"), e.Level, e.Scope, e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, e.Fields[k])
	}
	return sb.String()
}

// MatchesScope reports whether the entry's scope is prefix or nested under
// it ("registry" matches "registry.store" but not "registrar"). An empty
// prefix matches everything.
func (e LogEntry) MatchesScope(prefix string) bool {
	if prefix == "" || e.Scope == prefix {
		return true
	}
	return strings.HasPrefix(e.Scope, prefix+".")
}

// ParseLevel normalizes a level name to upper case. Unknown names are INFO.
func ParseLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug":
		return "DEBUG"
	case "warn", "warning":
		return "WARN"
	case "error":
		return "ERROR"
	default:
		return "INFO"
	}
}
