// pattern: Functional Core

package discovery

// gitMarker is the directory whose presence marks a git working tree.
const gitMarker = ".git"

// Marker maps a manifest file to the build system that owns the directory
// and the disposable output directories that build system produces.
type Marker struct {
	File         string
	System       BuildSystem
	ArtifactDirs []string
}

// markers is checked in order; earlier entries win the ordering of the
// resulting build system and artifact sets.
var markers = []Marker{
	{File: "Cargo.toml", System: Cargo, ArtifactDirs: []string{"target"}},
	{File: "package.json", System: Npm, ArtifactDirs: []string{"node_modules", "dist", "build"}},
	{File: "CMakeLists.txt", System: CMake, ArtifactDirs: []string{"build"}},
	{File: "go.mod", System: Go},
	{File: "pyproject.toml", System: Python, ArtifactDirs: []string{"__pycache__", ".venv", "dist"}},
	{File: "build.zig", System: Zig, ArtifactDirs: []string{"zig-out", "zig-cache"}},
	{File: "Makefile", System: Make},
	{File: "build.gradle", System: Gradle, ArtifactDirs: []string{"build", ".gradle"}},
	{File: "build.gradle.kts", System: Gradle, ArtifactDirs: []string{"build", ".gradle"}},
	{File: "pom.xml", System: Maven, ArtifactDirs: []string{"target"}},
	{File: "meson.build", System: Meson, ArtifactDirs: []string{"builddir"}},
}

// skipDirs holds every directory name the scanner refuses to descend into:
// the union of all marker artifact names plus VCS metadata.
var skipDirs = buildSkipDirs()

func buildSkipDirs() map[string]bool {
	dirs := map[string]bool{gitMarker: true}
	for _, m := range markers {
		for _, d := range m.ArtifactDirs {
			dirs[d] = true
		}
	}
	return dirs
}

// Markers returns a copy of the marker table.
func Markers() []Marker {
	out := make([]Marker, len(markers))
	copy(out, markers)
	return out
}

// IsArtifactDirName reports whether name is a known artifact or VCS metadata
// directory name.
func IsArtifactDirName(name string) bool {
	return skipDirs[name]
}
