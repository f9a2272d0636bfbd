// pattern: Imperative Shell

package discovery

import (
	"os"
	"path/filepath"
	"slices"
)

// Classify inspects path for VCS and build system markers. A directory with
// no markers yields an empty Detection, never an error.
func Classify(path string) Detection {
	var d Detection

	if exists(filepath.Join(path, gitMarker)) {
		d.VCS = append(d.VCS, Git)
	}

	for _, m := range markers {
		if !exists(filepath.Join(path, m.File)) {
			continue
		}
		// build.gradle and build.gradle.kts both map to Gradle
		if !slices.Contains(d.BuildSystems, m.System) {
			d.BuildSystems = append(d.BuildSystems, m.System)
		}
		for _, dir := range m.ArtifactDirs {
			if !slices.Contains(d.ArtifactDirs, dir) {
				d.ArtifactDirs = append(d.ArtifactDirs, dir)
			}
		}
	}

	return d
}

// IsProjectRoot reports whether path carries a VCS marker or any build
// system marker. It stops at the first hit.
func IsProjectRoot(path string) bool {
	if exists(filepath.Join(path, gitMarker)) {
		return true
	}
	for _, m := range markers {
		if exists(filepath.Join(path, m.File)) {
			return true
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
