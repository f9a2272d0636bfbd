// pattern: Imperative Shell

// Package clean removes build artifact directories from projects.
package clean

import (
	"fmt"
	"os"
	"path/filepath"

	"prj/internal/stats"
)

// Dir is one artifact directory present on disk.
type Dir struct {
	Name  string
	Bytes uint64
}

// Preview lists what Execute would remove.
type Preview struct {
	Dirs       []Dir
	TotalBytes uint64
}

// IsEmpty reports whether there is nothing to remove.
func (p Preview) IsEmpty() bool {
	return len(p.Dirs) == 0
}

// PreviewDirs sizes each of dirs that exists under path. Missing
// directories are omitted.
func PreviewDirs(path string, dirs []string) Preview {
	var p Preview
	for _, name := range dirs {
		full := filepath.Join(path, name)
		info, err := os.Lstat(full)
		if err != nil || !info.IsDir() {
			continue
		}
		size := stats.DirSize(full)
		p.Dirs = append(p.Dirs, Dir{Name: name, Bytes: size})
		p.TotalBytes += size
	}
	return p
}

// Execute removes each of dirs that exists under path and returns the
// number of bytes freed.
func Execute(path string, dirs []string) (uint64, error) {
	p := PreviewDirs(path, dirs)
	for _, d := range p.Dirs {
		if err := os.RemoveAll(filepath.Join(path, d.Name)); err != nil {
			return 0, fmt.Errorf("failed to remove %s: %w", d.Name, err)
		}
	}
	return p.TotalBytes, nil
}
