// pattern: Imperative Shell

package stats

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hhatto/gocloc"

	"prj/internal/discovery"
)

// binarySniffLen is how many leading bytes are checked for NUL.
const binarySniffLen = 8000

// hiddenName matches dot files, which are never counted.
var hiddenName = regexp.MustCompile(`^\.`)

// locProcessor counts with gocloc's built-in language definitions.
func locProcessor() *gocloc.Processor {
	opts := gocloc.NewClocOptions()
	opts.ReNotMatch = hiddenName
	return gocloc.NewProcessor(gocloc.NewDefinedLanguages(), opts)
}

// CountLines tallies lines by language under root. Hidden directories and
// build artifact directories are not descended into; binary and
// unreadable files are skipped, as are files with no lines.
func CountLines(root string) LocStats {
	loc := LocStats{Languages: map[string]LangStats{}}

	files := sourceFiles(root)
	if len(files) == 0 {
		return loc
	}
	result, err := locProcessor().Analyze(files)
	if err != nil {
		return loc
	}

	for _, f := range result.Files {
		loc.add(f)
	}
	return loc
}

// sourceFiles lists the regular, non-binary files under root outside
// hidden and artifact directories.
func sourceFiles(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || discovery.IsArtifactDirName(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && !hiddenName.MatchString(d.Name()) && !isBinary(path) {
			files = append(files, path)
		}
		return nil
	})
	return files
}

func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer func() { _ = f.Close() }()

	head, _ := bufio.NewReader(f).Peek(binarySniffLen)
	return bytes.IndexByte(head, 0) >= 0
}

func (s *LocStats) add(f *gocloc.ClocFile) {
	code, comments, blanks := int(f.Code), int(f.Comments), int(f.Blanks)
	if code+comments+blanks == 0 {
		return
	}
	ls := s.Languages[f.Lang]
	ls.Code += code
	ls.Comments += comments
	ls.Blanks += blanks
	ls.Files++
	s.Languages[f.Lang] = ls

	s.TotalCode += code
	s.TotalComments += comments
	s.TotalBlanks += blanks
	s.TotalFiles++
}
