// Package app wires configuration, ignore rules, the walker and the printer
// into one run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/bethropolis/llmcontext/internal/config"
	"github.com/bethropolis/llmcontext/internal/ignore"
	"github.com/bethropolis/llmcontext/internal/logger"
	"github.com/bethropolis/llmcontext/internal/printer"
	"github.com/bethropolis/llmcontext/internal/setup"
	"github.com/bethropolis/llmcontext/internal/summary"
	"github.com/bethropolis/llmcontext/internal/utils"
	"github.com/bethropolis/llmcontext/internal/walker"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    utils.Logger
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
}

// Option configures an App.
type Option func(*App)

// WithFs replaces the operating-system filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(a *App) { a.fs = fsys }
}

// WithStdout sets where "-o -" output goes.
func WithStdout(w io.Writer) Option {
	return func(a *App) { a.stdout = w }
}

// WithStderr sets where logs, progress and the skipped list go.
func WithStderr(w io.Writer) Option {
	return func(a *App) { a.stderr = w }
}

// New creates a new App instance
func New(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	// Configure color globally
	color.NoColor = !cfg.UseColors

	level := logger.LevelInfo
	switch {
	case cfg.LogLevel != "":
		parsed, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		level = parsed
	case cfg.Verbose:
		level = logger.LevelDebug
	case cfg.Quiet:
		level = logger.LevelWarn
	}

	if cfg.LogFormat == "json" {
		a.log = logger.NewJSON(a.stderr, level)
	} else {
		a.log = logger.New(a.stderr, cfg.Verbose, cfg.UseColors).WithLevel(level)
	}
	return a, nil
}

// Run executes one aggregation: collect every target, then write the
// included files to the output in order.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	a.log.Info("Starting LLM Context Generator...")
	a.log.Debug("Color output: %v", a.cfg.UseColors)
	a.log.Debug("Concurrent mode: %v (workers: %d)", a.cfg.Concurrent, a.cfg.MaxWorkers)
	a.log.Debug("Ignore settings: hidden=%v, git=%v, rule files=%v", a.cfg.IgnoreHidden, a.cfg.IgnoreGit, a.cfg.RuleFiles)

	var outputPath string
	var excluded []string
	if !a.cfg.WritesToStdout() {
		abs, err := filepath.Abs(a.cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("invalid output path '%s': %w", a.cfg.OutputFile, err)
		}
		outputPath = abs
		excluded = append(excluded, abs)
	}

	targets, walkOptions, err := setup.ConfigureWalker(setup.WalkerConfig{
		Targets:       a.cfg.Targets,
		Fs:            a.fs,
		Concurrent:    a.cfg.Concurrent,
		MaxWorkers:    a.cfg.MaxWorkers,
		MaxFileSizeMB: a.cfg.MaxFileSizeMB,
		Extensions:    a.cfg.Extensions,
		IgnoreHidden:  a.cfg.IgnoreHidden,
		IgnoreGit:     a.cfg.IgnoreGit,
		CustomIgnore:  a.cfg.CustomIgnore,
		RuleFiles:     a.cfg.RuleFiles,
		ProjectRoot:   a.cfg.ProjectRoot,
		ExcludedPaths: excluded,
		ShowProgress:  a.cfg.ShowProgress,
		ProgressOut:   a.stderr,
		Context:       ctx,
		Quiet:         a.cfg.Quiet,
		Logger:        a.log,
	}, a.log.Info)
	if err != nil {
		return err
	}

	roots := make([]string, len(targets))
	matchers := make([]*ignore.IgnoreMatcher, len(targets))
	for i, t := range targets {
		roots[i] = t.AbsDir
		matchers[i] = t.Matcher
		a.log.Info("Target directory for content processing: %s", t.AbsDir)
		a.log.Info("Root for ignore pattern scanning: %s", t.Base)
	}
	if len(targets) > 1 {
		a.log.Info("Scanning %d directories:", len(targets))
		for _, t := range targets {
			a.log.Info("  - %s", t.AbsDir)
		}
	} else {
		a.log.Info("Scanning directory: %s", targets[0].AbsDir)
	}
	if a.cfg.Concurrent {
		a.log.Info("Using concurrent processing with %d workers.", a.cfg.MaxWorkers)
	}

	plans, err := walker.CollectAll(roots, matchers, walkOptions...)
	a.endProgress()
	if err != nil {
		return a.walkError(err)
	}

	out, closeOut, err := a.openOutput(outputPath)
	if err != nil {
		return err
	}

	p := printer.New().
		WithOutput(out).
		WithFormat(printer.Format(a.cfg.Format)).
		WithColors(a.cfg.UseColors && a.cfg.WritesToStdout())

	var skipped []walker.SkippedItem
	dirs := 0
	for _, plan := range plans {
		multi := len(plans) > 1
		if multi {
			p.BeginRoot(plan.AbsRoot)
		}
		root := plan.AbsRoot
		err := walker.Process(plan, func(entry walker.FileEntry, readErr error) error {
			if readErr != nil {
				p.PrintError(root, entry.RelativePath, readErr)
			} else {
				p.PrintFile(root, entry.RelativePath, entry.Content)
			}
			return p.Err()
		}, walkOptions...)
		if multi {
			p.EndRoot(plan.AbsRoot)
		}
		if err != nil {
			closeOut()
			a.endProgress()
			return a.walkError(err)
		}
		dirs += plan.Dirs
		skipped = append(skipped, qualify(plan, multi)...)
	}
	a.endProgress()

	if err := p.Finalize(); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("could not write to output file %s: %w", outputPath, err)
	}

	summary.DisplayWarnings(a.log, dedupe(skipped))
	display := outputPath
	if display == "" {
		display = "stdout"
	}
	summary.DisplayResults(a.log, summary.Results{
		Files:       p.GetCount(),
		BinaryFiles: p.BinaryCount(),
		Directories: dirs,
		Roots:       len(plans),
		Output:      display,
		Duration:    time.Since(startTime),
	}, a.cfg.Quiet)

	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skipped, a.stderr, a.cfg.Quiet)
	}
	return nil
}

func (a *App) openOutput(outputPath string) (io.Writer, func() error, error) {
	if outputPath == "" {
		return a.stdout, func() error { return nil }, nil
	}
	if exists, _ := afero.Exists(a.fs, outputPath); exists {
		a.log.Warn("Output file '%s' already exists. It will be overwritten.", outputPath)
	}
	a.log.Info("Output will be saved to: %s", outputPath)

	f, err := a.fs.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	closed := false
	return f, func() error {
		if closed {
			return nil
		}
		closed = true
		return f.Close()
	}, nil
}

func (a *App) endProgress() {
	if a.cfg.ShowProgress && !a.cfg.Quiet {
		fmt.Fprintln(a.stderr)
	}
}

func (a *App) walkError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timeout of %v reached: %w", a.cfg.Timeout, err)
	}
	return fmt.Errorf("critical error during directory walk: %w", err)
}

// qualify prefixes skipped paths with their root when several roots share
// one report.
func qualify(plan *walker.Plan, multi bool) []walker.SkippedItem {
	items := plan.Skipped()
	if !multi {
		return items
	}
	for i := range items {
		if items[i].Reason == walker.ReasonUnreadableRuleFile {
			continue
		}
		items[i].Path = path.Join(filepath.ToSlash(plan.AbsRoot), items[i].Path)
	}
	return items
}

// dedupe drops repeated rule-file warnings reported by roots sharing an
// ignore base.
func dedupe(items []walker.SkippedItem) []walker.SkippedItem {
	seen := make(map[walker.SkippedItem]bool, len(items))
	out := make([]walker.SkippedItem, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
