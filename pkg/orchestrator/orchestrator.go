// Package orchestrator implements the fetch pipeline: resolve a pattern into
// a stack of catalogue entries, download each one, unpack containers and
// collect the resulting local paths.
package orchestrator

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glorpus-work/mdshare/pkg/download"
	"github.com/glorpus-work/mdshare/pkg/errors"
	"github.com/glorpus-work/mdshare/pkg/fsutil"
	"github.com/glorpus-work/mdshare/pkg/repository"
)

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Fetch downloads every entry matching pattern into opts.WorkingDir, one
// after the other, and returns the local paths in stack order. Containers
// are replaced by their top-level members. A failing entry aborts the fetch;
// files fetched before it stay on disk.
func (o *Orchestrator) Fetch(ctx context.Context, pattern string, opts FetchOptions) ([]string, error) {
	paths, err := o.fetch(ctx, pattern, opts)
	if err != nil {
		emit(o.Hooks, Event{Phase: PhaseError, Msg: err.Error()})
		return nil, err
	}
	emit(o.Hooks, Event{Phase: PhaseDone, Msg: pattern})
	return paths, nil
}

func (o *Orchestrator) fetch(ctx context.Context, pattern string, opts FetchOptions) ([]string, error) {
	if o.Resolver == nil || o.DL == nil {
		return nil, errors.Wrap(errors.ErrConfiguration, "orchestrator needs a resolver and a downloader")
	}

	emit(o.Hooks, Event{Phase: PhaseResolving, Msg: pattern})
	stack, err := o.Resolver.Stack(pattern)
	if err != nil {
		return nil, err
	}
	if len(stack) == 0 {
		return nil, errors.NewLoadError(errors.ErrNotFound, pattern, "no file in the catalogue matches the pattern")
	}
	if o.Unpacker == nil && needsUnpack(stack) {
		return nil, errors.Wrap(errors.ErrConfiguration, "pattern matches containers but no unpacker is configured")
	}

	workingDir, err := prepareWorkingDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	reporter := opts.Progress
	if reporter == nil {
		reporter = noProgressReporter{}
	}
	stages, stageOf := plan(stack, workingDir, opts.Force)
	reporter.Start(stages)
	defer reporter.Finish()
	total := -1
	if n := len(stages); n > 0 && stages[n-1].Aggregate {
		total = n - 1
	}

	var result []string
	for i, entry := range stack {
		var progress download.Progress = download.NoProgress{}
		if stageOf[i] >= 0 {
			progress = &stageProgress{reporter: reporter, stage: stageOf[i], total: total}
		}

		emit(o.Hooks, Event{Phase: PhaseDownloading, ID: entry.Filename})
		path, err := o.DL.DownloadIfNeeded(ctx, entry.Filename, workingDir, opts.MaxAttempts, opts.Force, progress)
		if err != nil {
			return nil, err
		}
		if !entry.NeedsUnpack {
			result = append(result, path)
			continue
		}

		emit(o.Hooks, Event{Phase: PhaseUnpacking, ID: entry.Filename})
		members, err := o.Unpacker.ExtractTopLevel(ctx, path, workingDir)
		if err != nil {
			return nil, err
		}
		result = append(result, members...)
		if err := fsutil.RemoveIfExists(path); err != nil {
			return nil, err
		}
		slog.Debug("unpacked container",
			slog.String("container", entry.Filename),
			slog.Int("members", len(members)))
	}

	if len(result) == 0 {
		return nil, errors.Wrapf(errors.ErrInternal, "fetching %q produced no files", pattern)
	}
	return result, nil
}

func needsUnpack(stack []repository.StackEntry) bool {
	for _, entry := range stack {
		if entry.NeedsUnpack {
			return true
		}
	}
	return false
}

// prepareWorkingDir creates dir, or a temporary directory when dir is empty.
func prepareWorkingDir(dir string) (string, error) {
	if dir == "" {
		tmp, err := os.MkdirTemp("", "mdshare-")
		if err != nil {
			return "", errors.Wrap(err, "could not create temporary working directory")
		}
		slog.Debug("using temporary working directory", slog.String("dir", tmp))
		return tmp, nil
	}
	if fsutil.Exists(dir) && !fsutil.IsDir(dir) {
		return "", errors.Wrapf(errors.ErrConfiguration, "working directory %s is not a directory", dir)
	}
	if err := fsutil.EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// Plan returns the progress stages of a fetch: one per entry that will be
// downloaded, plus a trailing aggregate stage when there is more than one.
func Plan(stack []repository.StackEntry, workingDir string, force bool) []Stage {
	stages, _ := plan(stack, workingDir, force)
	return stages
}

// plan also returns, for each stack entry, the index of its stage or -1 when
// the entry is already present.
func plan(stack []repository.StackEntry, workingDir string, force bool) ([]Stage, []int) {
	stages := make([]Stage, 0, len(stack)+1)
	stageOf := make([]int, len(stack))
	var total int64
	for i, entry := range stack {
		stageOf[i] = -1
		if !force && fsutil.Exists(filepath.Join(workingDir, entry.Filename)) {
			continue
		}
		stageOf[i] = len(stages)
		stages = append(stages, Stage{Name: entry.Filename, Total: entry.Size})
		total += entry.Size
	}
	if len(stages) > 1 {
		stages = append(stages, Stage{Name: TotalLabel, Total: total, Aggregate: true})
	}
	return stages, stageOf
}

// stageProgress forwards chunk notifications to a stage and, when total is
// not negative, to the aggregate stage.
type stageProgress struct {
	reporter ProgressReporter
	stage    int
	total    int
}

func (p *stageProgress) OnChunk(_ int, size int) {
	p.reporter.Advance(p.stage, size)
	if p.total >= 0 {
		p.reporter.Advance(p.total, size)
	}
}
