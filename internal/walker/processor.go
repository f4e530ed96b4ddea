// Package walker handles directory traversal and file processing
package walker

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

type readResult struct {
	content []byte
	err     error
}

// Process reads every file of plan and calls walkFn for each, in plan
// order. With concurrency enabled up to MaxWorkers files are read at once;
// delivery order is unchanged. A read failure is passed to walkFn and
// recorded in the plan; an error returned by walkFn stops processing.
func Process(plan *Plan, walkFn WalkFunc, opts ...Option) error {
	options := buildOptions(opts)
	if plan == nil || len(plan.Files) == 0 {
		return nil
	}

	stats := startProgress(options.ProgressFn)
	defer stats.stop()

	if !options.Concurrent || options.MaxWorkers < 2 {
		options.Logger.Debug("Walker: Processing %d files sequentially", len(plan.Files))
		for i, f := range plan.Files {
			if err := options.Context.Err(); err != nil {
				return err
			}
			res := readFile(options.Fs, f)
			if err := deliver(plan, f, res, walkFn, options, stats); err != nil {
				return fmt.Errorf("walker: processing file %d (%s): %w", i, f.RelativePath, err)
			}
		}
		return nil
	}

	options.Logger.Debug("Walker: Processing %d files with %d workers", len(plan.Files), options.MaxWorkers)
	ctx, cancel := context.WithCancel(options.Context)
	defer cancel()

	results := make([]readResult, len(plan.Files))
	ready := make([]chan struct{}, len(plan.Files))
	for i := range ready {
		ready[i] = make(chan struct{})
	}

	var g errgroup.Group
	g.SetLimit(options.MaxWorkers)
	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i := range plan.Files {
			i := i
			g.Go(func() error {
				defer close(ready[i])
				if err := ctx.Err(); err != nil {
					results[i] = readResult{err: err}
					return nil
				}
				results[i] = readFile(options.Fs, plan.Files[i])
				return nil
			})
		}
	}()

	var procErr error
	for i, f := range plan.Files {
		<-ready[i]
		if err := ctx.Err(); err != nil {
			procErr = err
			break
		}
		if err := deliver(plan, f, results[i], walkFn, options, stats); err != nil {
			procErr = fmt.Errorf("walker: processing file %d (%s): %w", i, f.RelativePath, err)
			break
		}
		results[i] = readResult{}
	}

	cancel()
	<-launched
	_ = g.Wait()
	return procErr
}

func readFile(fsys afero.Fs, f PlannedFile) readResult {
	content, err := afero.ReadFile(fsys, f.FullPath)
	if err != nil {
		return readResult{err: fmt.Errorf("failed to read file: %w", err)}
	}
	return readResult{content: content}
}

func deliver(plan *Plan, f PlannedFile, res readResult, walkFn WalkFunc, options WalkOptions, stats *progress) error {
	stats.current.Store(f.RelativePath)
	entry := FileEntry{
		Root:         plan.Root,
		RelativePath: f.RelativePath,
		Size:         f.Size,
		Content:      res.content,
	}
	if res.err != nil {
		options.Logger.Error("Walker: Could not read %q: %v", f.RelativePath, res.err)
		plan.tracker.Track(f.RelativePath, ReasonSkippedReadError, false)
		stats.skipped(false)
	} else {
		options.Logger.Debug("Walker: Read %q (%d bytes)", f.RelativePath, len(res.content))
		stats.processedFiles.Add(1)
	}
	return walkFn(entry, res.err)
}
