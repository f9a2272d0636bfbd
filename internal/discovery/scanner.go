// pattern: Imperative Shell

package discovery

import (
	"io/fs"
	"path/filepath"
	"strings"

	"prj/internal/logging"
)

// Scanner walks a directory tree looking for project roots.
type Scanner struct {
	logger *logging.ScopedLogger
}

// NewScanner creates a new project scanner. A nil logger discards output.
func NewScanner(logger *logging.ScopedLogger) *Scanner {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Scanner{logger: logger}
}

// Scan returns the project roots under root, in pre-order, visiting
// directories no deeper than maxDepth (root is depth 0).
//
// Artifact directories, hidden directories and anything below an already
// found project root are never descended into. Unreadable directories are
// skipped.
func (s *Scanner) Scan(root string, maxDepth int) []string {
	root = filepath.Clean(root)

	var found []string
	var roots []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		depth := depthOf(root, path)
		if depth > 0 && !descendable(d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if depth > maxDepth {
			return filepath.SkipDir
		}

		// Nested repositories are not caught by the name filter, only here.
		for _, r := range roots {
			if isStrictDescendant(r, path) {
				return filepath.SkipDir
			}
		}

		if IsProjectRoot(path) {
			s.logger.Debug("found project root", "path", path, "depth", depth)
			roots = append(roots, path)
			found = append(found, path)
		}

		if depth == maxDepth {
			return filepath.SkipDir
		}
		return nil
	})

	return found
}

// descendable applies the entry filter used before descending into a
// non-root entry.
func descendable(d fs.DirEntry) bool {
	if !d.IsDir() {
		return false
	}
	name := d.Name()
	if IsArtifactDirName(name) {
		return false
	}
	return !strings.HasPrefix(name, ".")
}

// depthOf returns the number of path components between root and path.
func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// isStrictDescendant reports whether path lies strictly below ancestor.
func isStrictDescendant(ancestor, path string) bool {
	if ancestor == path {
		return false
	}
	prefix := ancestor
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
