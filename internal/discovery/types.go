// pattern: Functional Core

package discovery

// VCS identifies a version control system detected in a project root.
type VCS string

// Git is currently the only detected VCS.
const Git VCS = "Git"

// BuildSystem identifies a build tool detected by its marker file.
type BuildSystem string

const (
	Cargo  BuildSystem = "Cargo"
	Npm    BuildSystem = "Npm"
	CMake  BuildSystem = "CMake"
	Go     BuildSystem = "Go"
	Python BuildSystem = "Python"
	Zig    BuildSystem = "Zig"
	Make   BuildSystem = "Make"
	Gradle BuildSystem = "Gradle"
	Maven  BuildSystem = "Maven"
	Meson  BuildSystem = "Meson"
)

// Detection is the classification of a single directory.
// All three slices are sets: no duplicates, in marker table order.
type Detection struct {
	VCS          []VCS
	BuildSystems []BuildSystem
	ArtifactDirs []string
}

// IsEmpty reports whether nothing was detected.
func (d Detection) IsEmpty() bool {
	return len(d.VCS) == 0 && len(d.BuildSystems) == 0
}
