// pattern: Functional Core

package registry

import (
	"slices"
	"time"

	"prj/internal/discovery"
)

// Project is one registered project directory. Detection fields are a
// snapshot taken at registration time and are never refreshed.
type Project struct {
	Name         string                  `toml:"name"`
	Path         string                  `toml:"path"`
	VCS          []discovery.VCS         `toml:"vcs"`
	BuildSystems []discovery.BuildSystem `toml:"build_systems"`
	ArtifactDirs []string                `toml:"artifact_dirs"`
	AddedAt      time.Time               `toml:"added_at"`
	Tags         []string                `toml:"tags"`
}

// HasVCS reports whether the project was detected as a repository of kind v.
func (p Project) HasVCS(v discovery.VCS) bool {
	return slices.Contains(p.VCS, v)
}

// HasTag reports whether the project carries tag.
func (p Project) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// newProject builds a record from a detection result.
func newProject(name, path string, d discovery.Detection, now time.Time) Project {
	return Project{
		Name:         name,
		Path:         path,
		VCS:          d.VCS,
		BuildSystems: d.BuildSystems,
		ArtifactDirs: d.ArtifactDirs,
		AddedAt:      now,
		Tags:         []string{},
	}
}
