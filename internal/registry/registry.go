// pattern: Imperative Shell

package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"prj/internal/discovery"
)

// Registry is the ordered set of registered projects. Order is insertion
// order and is visible to callers through list output and selection indices.
type Registry struct {
	Projects []Project `toml:"projects"`

	// now is overridable in tests.
	now func() time.Time
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{Projects: []Project{}}
}

// Len returns the number of registered projects.
func (r *Registry) Len() int {
	return len(r.Projects)
}

// Add appends p unless a project with the same path is already registered.
func (r *Registry) Add(p Project) error {
	for _, existing := range r.Projects {
		if existing.Path == p.Path {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, p.Path)
		}
	}
	r.Projects = append(r.Projects, p)
	return nil
}

// Register resolves path to its canonical form, classifies it and adds it
// under name, or under the last path component when name is empty.
// The returned pointer refers to the stored record.
func (r *Registry) Register(path, name string) (*Project, error) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, canonical)
	}

	if name == "" {
		name = defaultName(canonical)
	}

	p := newProject(name, canonical, discovery.Classify(canonical), r.clock())
	if err := r.Add(p); err != nil {
		return nil, err
	}
	return &r.Projects[len(r.Projects)-1], nil
}

// Find returns the first project named name, in insertion order. The
// pointer may be used to mutate the stored record.
func (r *Registry) Find(name string) (*Project, bool) {
	i := r.indexOf(name)
	if i < 0 {
		return nil, false
	}
	return &r.Projects[i], true
}

// FindByPath returns the project registered at the canonical path.
func (r *Registry) FindByPath(path string) (*Project, bool) {
	for i := range r.Projects {
		if r.Projects[i].Path == path {
			return &r.Projects[i], true
		}
	}
	return nil, false
}

// Remove detaches and returns the first project named name.
func (r *Registry) Remove(name string) (Project, error) {
	i := r.indexOf(name)
	if i < 0 {
		return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return r.RemoveAt(i), nil
}

// RemoveAt detaches and returns the project at index i. It panics if i is
// out of range.
func (r *Registry) RemoveAt(i int) Project {
	p := r.Projects[i]
	r.Projects = slices.Delete(r.Projects, i, i+1)
	return p
}

// AddTags unions tags into the named project's tag set. The result is sorted.
func (r *Registry) AddTags(name string, tags []string) error {
	p, ok := r.Find(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	for _, t := range tags {
		if !slices.Contains(p.Tags, t) {
			p.Tags = append(p.Tags, t)
		}
	}
	slices.Sort(p.Tags)
	return nil
}

// RemoveTags removes tags from the named project's tag set.
func (r *Registry) RemoveTags(name string, tags []string) error {
	p, ok := r.Find(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	p.Tags = slices.DeleteFunc(p.Tags, func(t string) bool {
		return slices.Contains(tags, t)
	})
	return nil
}

// FindOrphaned returns the projects whose path no longer exists. The
// filesystem is consulted on every call.
func (r *Registry) FindOrphaned() []Project {
	var orphaned []Project
	for _, p := range r.Projects {
		if isOrphaned(p) {
			orphaned = append(orphaned, p)
		}
	}
	return orphaned
}

// RemoveOrphaned drops every project whose path no longer exists and
// returns the dropped records. Survivors keep their relative order.
func (r *Registry) RemoveOrphaned() []Project {
	var orphaned []Project
	alive := make([]Project, 0, len(r.Projects))
	for _, p := range r.Projects {
		if isOrphaned(p) {
			orphaned = append(orphaned, p)
		} else {
			alive = append(alive, p)
		}
	}
	r.Projects = alive
	return orphaned
}

// WithTag returns the projects carrying tag, in registry order.
func (r *Registry) WithTag(tag string) []Project {
	var out []Project
	for _, p := range r.Projects {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Names returns every project name in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Projects))
	for i, p := range r.Projects {
		names[i] = p.Name
	}
	return names
}

func (r *Registry) indexOf(name string) int {
	return slices.IndexFunc(r.Projects, func(p Project) bool {
		return p.Name == name
	})
}

func (r *Registry) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now().UTC()
}

// Canonicalize returns the absolute, symlink-resolved form of path.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return resolved, nil
}

func defaultName(path string) string {
	base := filepath.Base(path)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "unknown"
	}
	return base
}

func isOrphaned(p Project) bool {
	_, err := os.Stat(p.Path)
	return os.IsNotExist(err)
}
