// pattern: Functional Core

package stats

import (
	"cmp"
	"maps"
	"slices"

	"github.com/dustin/go-humanize"

	"prj/internal/gitstatus"
)

// LangStats tallies one language.
type LangStats struct {
	Code     int `json:"code"`
	Comments int `json:"comments"`
	Blanks   int `json:"blanks"`
	Files    int `json:"files"`
}

// LocStats holds line counts by language plus totals.
type LocStats struct {
	Languages     map[string]LangStats `json:"languages"`
	TotalCode     int                  `json:"total_code"`
	TotalComments int                  `json:"total_comments"`
	TotalBlanks   int                  `json:"total_blanks"`
	TotalFiles    int                  `json:"total_files"`
}

// LanguageNames returns the counted languages ordered by code lines,
// largest first, then by name.
func (s LocStats) LanguageNames() []string {
	names := slices.Collect(maps.Keys(s.Languages))
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(s.Languages[b].Code, s.Languages[a].Code); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}

// DiskStats splits a project's size into total bytes and bytes under its
// recorded artifact directories.
type DiskStats struct {
	TotalBytes    uint64 `json:"total_bytes"`
	ArtifactBytes uint64 `json:"artifact_bytes"`
}

// TotalDisplay formats TotalBytes for humans.
func (d DiskStats) TotalDisplay() string {
	return FormatBytes(d.TotalBytes)
}

// ArtifactDisplay formats ArtifactBytes for humans.
func (d DiskStats) ArtifactDisplay() string {
	return FormatBytes(d.ArtifactBytes)
}

// ProjectStats aggregates everything known about one project.
type ProjectStats struct {
	Name string            `json:"name"`
	Path string            `json:"path"`
	Git  *gitstatus.Status `json:"git"`
	Loc  LocStats          `json:"loc"`
	Disk DiskStats         `json:"disk"`
}

// Overview aggregates statistics across projects.
type Overview struct {
	TotalProjects      int            `json:"total_projects"`
	TotalCodeLines     int            `json:"total_code_lines"`
	TotalDiskBytes     uint64         `json:"total_disk_bytes"`
	TotalArtifactBytes uint64         `json:"total_artifact_bytes"`
	DirtyProjects      int            `json:"dirty_projects"`
	Projects           []ProjectStats `json:"projects"`
}

// FormatBytes renders n as a human-readable size such as "12 MB".
func FormatBytes(n uint64) string {
	return humanize.Bytes(n)
}

// summarize builds an Overview from per-project results.
func summarize(projects []ProjectStats) Overview {
	ov := Overview{TotalProjects: len(projects), Projects: projects}
	for _, ps := range projects {
		ov.TotalCodeLines += ps.Loc.TotalCode
		ov.TotalDiskBytes += ps.Disk.TotalBytes
		ov.TotalArtifactBytes += ps.Disk.ArtifactBytes
		if ps.Git != nil && ps.Git.IsDirty() {
			ov.DirtyProjects++
		}
	}
	return ov
}
