// pattern: Imperative Shell
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"prj/internal/manifest"
	"prj/internal/registry"
)

func (e *Env) runExport(args []string) error {
	const usage = "Usage: prj export [--output FILE] [--base-dir DIR]"
	fs := newFlagSet("export")
	output := fs.StringP("output", "o", "", "write the manifest to FILE instead of stdout")
	baseDir := fs.String("base-dir", "", "base directory for relative paths")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return usageError(usage)
	}

	reg, err := e.load()
	if err != nil {
		return err
	}
	if reg.Len() == 0 {
		e.status("No projects to export.")
		return nil
	}

	ctx := context.Background()
	git := e.gitCollector()
	remote := func(path string) string {
		return git.RemoteURL(ctx, path)
	}

	m := manifest.Export(reg.Projects, expandPath(*baseDir), remote)
	data, err := manifest.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if *output == "" {
		_, err = e.Stdout.Write(data)
		return err
	}
	path := expandPath(*output)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	e.logger("cli").Info("exported manifest", "path", path, "projects", len(m.Projects))
	e.status("Exported %d projects to %s", len(m.Projects), path)
	return nil
}

func (e *Env) runImport(args []string) error {
	const usage = "Usage: prj import <file> [--base-dir DIR]"
	fs := newFlagSet("import")
	baseDir := fs.String("base-dir", "", "override the manifest base directory")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usageError(usage)
	}

	data, err := os.ReadFile(expandPath(fs.Arg(0)))
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return err
	}

	logger := e.logger("cli")
	ctx := context.Background()

	// Clone first, register afterwards, so the registry lock is not held
	// across network operations.
	var cloned []manifest.Target
	skipped := 0
	for _, t := range manifest.ImportTargets(m, expandPath(*baseDir)) {
		if _, err := os.Stat(t.Path); err == nil {
			e.status("  skip %s (already exists: %s)", t.Entry.Name, t.Path)
			skipped++
			continue
		}
		if t.Entry.RemoteURL == "" {
			e.status("  skip %s (no remote URL)", t.Entry.Name)
			skipped++
			continue
		}

		e.status("  cloning %s...", t.Entry.Name)
		if err := os.MkdirAll(filepath.Dir(t.Path), 0o755); err != nil {
			e.status("  ! %s: %v", t.Entry.Name, err)
			skipped++
			continue
		}
		if err := e.gitClone(ctx, "", t.Entry.RemoteURL, t.Path); err != nil {
			logger.Warn("clone failed", "project", t.Entry.Name, "error", err)
			e.status("  ! %s: %v", t.Entry.Name, err)
			skipped++
			continue
		}
		cloned = append(cloned, t)
	}

	if len(cloned) > 0 {
		err := e.update(func(reg *registry.Registry) error {
			for _, t := range cloned {
				p, err := reg.Register(t.Path, t.Entry.Name)
				if errors.Is(err, registry.ErrDuplicatePath) {
					continue
				}
				if err != nil {
					e.status("  ! %s: %v", t.Entry.Name, err)
					continue
				}
				p.Tags = slices.Compact(slices.Sorted(slices.Values(append(p.Tags, t.Entry.Tags...))))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	logger.Info("imported manifest", "cloned", len(cloned), "skipped", skipped)
	e.status("\nImport complete: cloned %d, skipped %d", len(cloned), skipped)
	return nil
}
