// pattern: Imperative Shell

package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"prj/internal/gitstatus"
	"prj/internal/logging"
	"prj/internal/registry"
)

// GitCollector reports the git status of a directory, or nil.
type GitCollector interface {
	Collect(ctx context.Context, path string) *gitstatus.Status
}

// Collector computes project statistics.
type Collector struct {
	git    GitCollector
	logger *logging.ScopedLogger
}

// NewCollector creates a stats collector using git for repository status.
func NewCollector(git GitCollector, logger *logging.ScopedLogger) *Collector {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Collector{git: git, logger: logger}
}

// CollectProject gathers git status, line counts and disk usage for p.
func (c *Collector) CollectProject(ctx context.Context, p registry.Project) ProjectStats {
	ps := ProjectStats{
		Name: p.Name,
		Path: p.Path,
		Loc:  CountLines(p.Path),
		Disk: DiskUsage(p.Path, p.ArtifactDirs),
	}
	if c.git != nil {
		ps.Git = c.git.Collect(ctx, p.Path)
	}
	c.logger.Debug("collected project stats",
		"project", p.Name,
		"code", ps.Loc.TotalCode,
		"bytes", ps.Disk.TotalBytes,
	)
	return ps
}

// CollectOverview gathers stats for every project using at most workers
// goroutines. Results keep the order of projects.
func (c *Collector) CollectOverview(ctx context.Context, projects []registry.Project, workers int) Overview {
	if workers < 1 {
		workers = 1
	}

	results := make([]ProjectStats, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range projects {
		g.Go(func() error {
			results[i] = c.CollectProject(gctx, p)
			return nil
		})
	}
	_ = g.Wait()

	return summarize(results)
}
