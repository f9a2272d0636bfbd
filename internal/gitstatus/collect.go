// pattern: Imperative Shell

package gitstatus

import (
	"context"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"prj/internal/logging"
)

// Runner executes git with args in dir and returns its standard output.
type Runner func(ctx context.Context, dir string, args ...string) (string, error)

// ExecRunner runs the git binary found on PATH.
func ExecRunner(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	return string(out), err
}

// Collector gathers git status for project directories.
type Collector struct {
	run    Runner
	logger *logging.ScopedLogger
}

// NewCollector creates a collector that shells out to git.
func NewCollector(logger *logging.ScopedLogger) *Collector {
	return NewCollectorWithRunner(ExecRunner, logger)
}

// NewCollectorWithRunner creates a collector with the given runner (for testing).
func NewCollectorWithRunner(run Runner, logger *logging.ScopedLogger) *Collector {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Collector{run: run, logger: logger}
}

// Collect returns the status of the repository at path, or nil when path
// is not a repository or git cannot read it.
func (c *Collector) Collect(ctx context.Context, path string) *Status {
	out, err := c.run(ctx, path, "status", "--porcelain=v2", "--branch", "--untracked-files=normal")
	if err != nil {
		c.logger.Debug("git status unavailable", "path", path, "error", err)
		return nil
	}
	return Parse(out)
}

// RemoteURL returns the origin remote of the repository at path, or "".
func (c *Collector) RemoteURL(ctx context.Context, path string) string {
	out, err := c.run(ctx, path, "config", "--get", "remote.origin.url")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// CollectAll gathers status for every path with at most workers concurrent
// git invocations. Paths without a readable repository map to nil.
func (c *Collector) CollectAll(ctx context.Context, paths []string, workers int) map[string]*Status {
	if workers < 1 {
		workers = 1
	}

	results := make(map[string]*Status, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range paths {
		g.Go(func() error {
			st := c.Collect(gctx, path)
			mu.Lock()
			results[path] = st
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}
