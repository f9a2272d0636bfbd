// pattern: Functional Core

package gitstatus

// Status is a snapshot of a working tree's state.
type Status struct {
	Branch    string `json:"branch,omitempty"` // empty when HEAD is detached or unborn
	Changed   int    `json:"changed"`          // tracked files modified in the worktree
	Staged    int    `json:"staged"`           // files with index changes
	Untracked int    `json:"untracked"`
	Ahead     int    `json:"ahead"`
	Behind    int    `json:"behind"`
}

// IsDirty reports whether the tree has any staged, changed or untracked files.
func (s *Status) IsDirty() bool {
	return s.Changed > 0 || s.Staged > 0 || s.Untracked > 0
}

// Summary renders the compact form used in tables: "clean", or the non-zero
// counts such as "+2 ~1 ?3".
func (s *Status) Summary() string {
	if s == nil {
		return "-"
	}
	if !s.IsDirty() {
		return "clean"
	}
	out := ""
	add := func(prefix string, n int) {
		if n == 0 {
			return
		}
		if out != "" {
			out += " "
		}
		out += prefix + itoa(n)
	}
	add("+", s.Staged)
	add("~", s.Changed)
	add("?", s.Untracked)
	return out
}

// Sync renders ahead/behind counts as "↑1 ↓2", or "" when in sync.
func (s *Status) Sync() string {
	if s == nil {
		return ""
	}
	switch {
	case s.Ahead > 0 && s.Behind > 0:
		return "↑" + itoa(s.Ahead) + " ↓" + itoa(s.Behind)
	case s.Ahead > 0:
		return "↑" + itoa(s.Ahead)
	case s.Behind > 0:
		return "↓" + itoa(s.Behind)
	}
	return ""
}
