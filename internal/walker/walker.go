// Package walker handles directory traversal and file processing
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/bethropolis/llmcontext/internal/ignore"
	"github.com/bethropolis/llmcontext/internal/project"
)

// frame is one directory on the traversal stack. entries are sorted by
// name and next is the index of the entry to visit next.
type frame struct {
	dir     string // relative to the scan root, "" for the root
	chain   ignore.Chain
	entries []os.FileInfo
	next    int
}

// Walk traverses the directory tree starting from rootDir and hands every
// included file to walkFn in pre-order. It returns the skipped items and
// any critical error that occurred.
func Walk(rootDir string, matcher *ignore.IgnoreMatcher, walkFn WalkFunc, opts ...Option) ([]SkippedItem, error) {
	plan, err := Collect(rootDir, matcher, opts...)
	if err != nil {
		return plan.Skipped(), err
	}
	err = Process(plan, walkFn, opts...)
	return plan.Skipped(), err
}

// Collect performs the traversal of rootDir without reading any file. The
// returned Plan lists included files in depth-first pre-order, entries of
// one directory sorted by name. A nil matcher includes everything.
//
// Ignored directories are pruned: nothing beneath them is listed and no
// rule file inside them is read. Problems local to one directory are
// recorded in the plan and never stop the traversal.
func Collect(rootDir string, matcher *ignore.IgnoreMatcher, opts ...Option) (*Plan, error) {
	startTime := time.Now()
	options := buildOptions(opts)

	plan := &Plan{Root: rootDir, tracker: NewSkippedTracker(64)}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		plan.tracker.Track(rootDir, ReasonSkippedPathError, true)
		return plan, fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}
	plan.AbsRoot = absRootDir

	info, err := options.Fs.Stat(absRootDir)
	if err != nil {
		return plan, fmt.Errorf("walker: cannot access '%s': %w", rootDir, err)
	}
	if !info.IsDir() {
		return plan, fmt.Errorf("walker: '%s' is not a directory", rootDir)
	}

	if matcher != nil && matcher.Index() != nil {
		plan.Prefix, err = project.RelativeDir(matcher.RootDir(), absRootDir)
		if err != nil {
			return plan, fmt.Errorf("walker: %w", err)
		}
	}

	stats := startProgress(options.ProgressFn)
	defer stats.stop()

	options.Logger.Debug("walker.Collect started. Root: %s, Ignore base prefix: %q", absRootDir, plan.Prefix)

	entries, err := afero.ReadDir(options.Fs, absRootDir)
	if err != nil {
		return plan, fmt.Errorf("walker: cannot list '%s': %w", rootDir, err)
	}
	stack := []frame{{chain: matcher.ChainTo(plan.Prefix), entries: entries}}
	plan.Dirs = 1

	for len(stack) > 0 {
		if err := options.Context.Err(); err != nil {
			return plan, err
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++
		parent := top.dir
		chain := top.chain

		relativePath := path.Join(parent, entry.Name())
		fullPath := filepath.Join(absRootDir, filepath.FromSlash(relativePath))

		entry, isDir, ok := resolveEntry(options, plan, stats, entry, fullPath, relativePath)
		if !ok {
			continue
		}
		if isDir {
			stats.totalDirs.Add(1)
		} else {
			stats.totalFiles.Add(1)
		}

		if _, excluded := options.ExcludedPaths[fullPath]; excluded && !isDir {
			options.Logger.Debug("Walker: Skipping output file %q", relativePath)
			plan.tracker.Track(relativePath, ReasonSkippedOutputFile, false)
			stats.skipped(false)
			continue
		}

		ignorePath := path.Join(plan.Prefix, relativePath)
		if reason, _ := matcher.Decide(chain, ignorePath, isDir); reason != ignore.NotIgnored {
			if isDir {
				options.Logger.Debug("Walker: Pruned directory %q (%s)", relativePath, reason)
			}
			plan.tracker.Track(relativePath, skippedReason(reason), isDir)
			stats.skipped(isDir)
			continue
		}

		if isDir {
			children, err := afero.ReadDir(options.Fs, fullPath)
			if err != nil {
				reason := ReasonSkippedWalkError
				if errors.Is(err, fs.ErrPermission) {
					reason = ReasonSkippedPermError
				}
				options.Logger.Debug("Warning: Could not read directory %s: %v", relativePath, err)
				plan.tracker.Track(relativePath, reason, true)
				stats.skipped(true)
				continue
			}
			options.Logger.Debug("Walker: Descending into directory %q", relativePath)
			plan.Dirs++
			stack = append(stack, frame{
				dir:     relativePath,
				chain:   matcher.Extend(chain, ignorePath),
				entries: children,
			})
			continue
		}

		if !extensionAllowed(options.ExtensionMap, relativePath) {
			plan.tracker.Track(relativePath, ReasonFilteredExtension, false)
			stats.skipped(false)
			continue
		}
		if options.MaxFileSize > 0 && entry.Size() > options.MaxFileSize {
			options.Logger.Debug("Walker: Skipping %q: exceeds size limit (%d > %d bytes)",
				relativePath, entry.Size(), options.MaxFileSize)
			plan.tracker.Track(relativePath, ReasonSkippedSizeLimit, false)
			stats.skipped(false)
			continue
		}

		plan.Files = append(plan.Files, PlannedFile{
			RelativePath: relativePath,
			FullPath:     fullPath,
			Size:         entry.Size(),
		})
	}

	for _, d := range matcher.Diagnostics() {
		plan.tracker.Track(d.Path, ReasonUnreadableRuleFile, false)
	}

	options.Logger.Debug("Walker: Collected %d files in %d directories (%s)",
		len(plan.Files), plan.Dirs, time.Since(startTime))
	return plan, nil
}

// CollectAll collects several roots in parallel. Plans are returned in the
// order of roots; matchers[i] is used for roots[i].
func CollectAll(roots []string, matchers []*ignore.IgnoreMatcher, opts ...Option) ([]*Plan, error) {
	if len(matchers) != len(roots) {
		return nil, fmt.Errorf("walker: %d roots but %d matchers", len(roots), len(matchers))
	}

	plans := make([]*Plan, len(roots))
	var g errgroup.Group
	for i := range roots {
		i := i
		g.Go(func() error {
			plan, err := Collect(roots[i], matchers[i], opts...)
			plans[i] = plan
			return err
		})
	}
	return plans, g.Wait()
}

// resolveEntry follows symlinks to files and filters out everything that
// is neither a regular file nor a directory.
func resolveEntry(options WalkOptions, plan *Plan, stats *progress, entry os.FileInfo, fullPath, relativePath string) (os.FileInfo, bool, bool) {
	mode := entry.Mode()
	if mode&os.ModeSymlink != 0 {
		target, err := options.Fs.Stat(fullPath)
		if err != nil {
			options.Logger.Debug("Walker: Broken symlink %q: %v", relativePath, err)
			plan.tracker.Track(relativePath, ReasonSkippedWalkError, false)
			stats.skipped(false)
			return nil, false, false
		}
		if !target.Mode().IsRegular() {
			plan.tracker.Track(relativePath, ReasonSkippedNotRegular, target.IsDir())
			stats.skipped(target.IsDir())
			return nil, false, false
		}
		return target, false, true
	}
	if mode.IsDir() {
		return entry, true, true
	}
	if !mode.IsRegular() {
		plan.tracker.Track(relativePath, ReasonSkippedNotRegular, false)
		stats.skipped(false)
		return nil, false, false
	}
	return entry, false, true
}

func extensionAllowed(extMap map[string]struct{}, relativePath string) bool {
	if len(extMap) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(relativePath), "."))
	_, ok := extMap[ext]
	return ok
}

func skippedReason(reason ignore.Reason) SkippedReason {
	switch reason {
	case ignore.HiddenEntry:
		return ReasonIgnoredHidden
	case ignore.GitDir:
		return ReasonIgnoredGitDir
	default:
		return ReasonIgnoredRule
	}
}
