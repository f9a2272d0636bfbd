// pattern: Imperative Shell

package stats

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// DiskUsage sums regular file sizes under root. Files whose first path
// component below root is one of artifactDirs also count as artifact bytes.
// Symlinks are not followed and unreadable entries are skipped.
func DiskUsage(root string, artifactDirs []string) DiskStats {
	var ds DiskStats

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		size := uint64(info.Size())
		ds.TotalBytes += size

		if rel, err := filepath.Rel(root, path); err == nil {
			first, _, _ := strings.Cut(rel, string(filepath.Separator))
			if slices.Contains(artifactDirs, first) {
				ds.ArtifactBytes += size
			}
		}
		return nil
	})

	return ds
}

// DirSize returns the total size of regular files under path.
func DirSize(path string) uint64 {
	return DiskUsage(path, nil).TotalBytes
}
