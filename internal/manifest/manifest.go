// pattern: Functional Core

// Package manifest converts registered projects to and from a portable
// document that can rebuild a workspace on another machine.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"prj/internal/registry"
)

// Version is the manifest format version written by Export.
const Version = 1

// ErrInvalidManifest indicates a document that cannot be imported.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is a portable description of a set of projects.
type Manifest struct {
	Version  int     `toml:"version"`
	BaseDir  string  `toml:"base_dir"`
	Projects []Entry `toml:"projects"`
}

// Entry is one project relative to the manifest's base directory.
type Entry struct {
	Name         string   `toml:"name"`
	RelativePath string   `toml:"relative_path"`
	RemoteURL    string   `toml:"remote_url,omitempty"`
	Tags         []string `toml:"tags"`
}

// Target pairs an entry with the directory it should occupy.
type Target struct {
	Entry Entry
	Path  string
}

// RemoteFunc returns the origin remote URL of the repository at path, or ""
// when there is none.
type RemoteFunc func(path string) string

// Export describes projects relative to baseDir, or to their longest common
// parent when baseDir is empty. Paths outside the base are kept absolute.
func Export(projects []registry.Project, baseDir string, remote RemoteFunc) Manifest {
	base := baseDir
	if base == "" {
		paths := make([]string, len(projects))
		for i, p := range projects {
			paths[i] = p.Path
		}
		base = CommonPrefix(paths)
	}
	base = filepath.Clean(base)

	m := Manifest{Version: Version, BaseDir: base, Projects: make([]Entry, 0, len(projects))}
	for _, p := range projects {
		e := Entry{
			Name:         p.Name,
			RelativePath: relativeTo(base, p.Path),
			Tags:         append([]string{}, p.Tags...),
		}
		if remote != nil {
			e.RemoteURL = remote(p.Path)
		}
		m.Projects = append(m.Projects, e)
	}
	return m
}

// Parse decodes a manifest document and checks its version.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if m.Version != Version {
		return Manifest{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidManifest, m.Version)
	}
	for i, e := range m.Projects {
		if e.Name == "" || e.RelativePath == "" {
			return Manifest{}, fmt.Errorf("%w: entry %d is missing a name or path", ErrInvalidManifest, i+1)
		}
	}
	return m, nil
}

// Marshal encodes m as a TOML document.
func Marshal(m Manifest) ([]byte, error) {
	return toml.Marshal(m)
}

// ImportTargets resolves each entry against baseDir, or against the
// manifest's own base directory when baseDir is empty.
func ImportTargets(m Manifest, baseDir string) []Target {
	base := baseDir
	if base == "" {
		base = m.BaseDir
	}

	targets := make([]Target, len(m.Projects))
	for i, e := range m.Projects {
		path := e.RelativePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}
		targets[i] = Target{Entry: e, Path: path}
	}
	return targets
}

// CommonPrefix returns the longest directory path shared by every path,
// compared component by component. It returns "." for no paths.
func CommonPrefix(paths []string) string {
	if len(paths) == 0 {
		return "."
	}

	split := func(p string) []string {
		return strings.Split(filepath.Clean(p), string(filepath.Separator))
	}

	prefix := split(paths[0])
	for _, p := range paths[1:] {
		other := split(p)
		n := 0
		for n < len(prefix) && n < len(other) && prefix[n] == other[n] {
			n++
		}
		prefix = prefix[:n]
	}

	joined := strings.Join(prefix, string(filepath.Separator))
	if joined == "" && len(prefix) > 0 {
		return string(filepath.Separator)
	}
	if joined == "" {
		return "."
	}
	return joined
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
