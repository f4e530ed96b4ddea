// Package setup provides initialization and configuration functions
package setup

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/bethropolis/llmcontext/internal/ignore"
	"github.com/bethropolis/llmcontext/internal/project"
	"github.com/bethropolis/llmcontext/internal/utils"
	"github.com/bethropolis/llmcontext/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a directory walker
type WalkerConfig struct {
	Targets       []string
	Fs            afero.Fs
	Concurrent    bool
	MaxWorkers    int
	MaxFileSizeMB int64
	Extensions    []string
	IgnoreHidden  bool
	IgnoreGit     bool
	CustomIgnore  []string
	RuleFiles     []string
	ProjectRoot   bool
	ExcludedPaths []string
	ShowProgress  bool
	ProgressOut   io.Writer
	Context       context.Context
	Quiet         bool
	Logger        utils.Logger
}

// Target is one directory to scan together with the matcher that owns its
// ignore rules.
type Target struct {
	Dir     string
	AbsDir  string
	Base    string
	Matcher *ignore.IgnoreMatcher
}

// ConfigureWalker sets up an ignore matcher per target and the walker
// options shared by all of them.
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) ([]Target, []walker.Option, error) {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = utils.NoopLogger{}
	}

	if len(cfg.CustomIgnore) > 0 {
		infoLog("Using custom ignore patterns: %v", cfg.CustomIgnore)
	}
	if len(cfg.Extensions) > 0 {
		dotted := make([]string, len(cfg.Extensions))
		for i, ext := range cfg.Extensions {
			dotted[i] = "." + ext
		}
		infoLog("Filtering enabled. Only including extensions: %s", strings.Join(dotted, ", "))
	} else {
		infoLog("No extension filtering (including all file types).")
	}
	if cfg.IgnoreHidden {
		infoLog("Ignoring hidden files/directories (starting with '.').")
	} else {
		infoLog("Including hidden files/directories.")
	}

	targets := make([]Target, 0, len(cfg.Targets))
	// targets sharing an ignore base share one matcher and its index
	matchers := make(map[string]*ignore.IgnoreMatcher)
	for _, dir := range cfg.Targets {
		target, err := resolveTarget(cfg, dir)
		if err != nil {
			return nil, nil, err
		}
		if m, ok := matchers[target.Base]; ok {
			target.Matcher = m
		} else {
			target.Matcher, err = ignore.New(target.Base,
				ignore.WithFs(cfg.Fs),
				ignore.WithLogger(cfg.Logger),
				ignore.WithHiddenIgnore(cfg.IgnoreHidden),
				ignore.WithGitIgnore(cfg.IgnoreGit),
				ignore.WithCustomRules(cfg.CustomIgnore),
				ignore.WithRuleFiles(cfg.RuleFiles),
			)
			if err != nil {
				return nil, nil, fmt.Errorf("error initializing ignore rules: %w", err)
			}
			matchers[target.Base] = target.Matcher
		}
		targets = append(targets, target)
	}

	walkOptions := []walker.Option{
		walker.WithFs(cfg.Fs),
		walker.WithLogger(cfg.Logger),
		walker.WithConcurrency(cfg.Concurrent),
		walker.WithMaxWorkers(cfg.MaxWorkers),
		walker.WithExtensions(cfg.Extensions),
		walker.WithExcludedPaths(cfg.ExcludedPaths...),
	}

	if cfg.ShowProgress && !cfg.Quiet && cfg.ProgressOut != nil {
		cfg.Logger.Debug("Progress display enabled")
		walkOptions = append(walkOptions, walker.WithProgress(progressPrinter(cfg.ProgressOut)))
	}

	// Convert MB to bytes for MaxFileSize if specified
	if cfg.MaxFileSizeMB > 0 {
		walkOptions = append(walkOptions, walker.WithMaxFileSize(cfg.MaxFileSizeMB*1024*1024))
		infoLog("Ignoring files larger than %d MB.", cfg.MaxFileSizeMB)
	}

	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}

	return targets, walkOptions, nil
}

func resolveTarget(cfg WalkerConfig, dir string) (Target, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Target{}, fmt.Errorf("invalid directory path '%s': %w", dir, err)
	}
	info, err := cfg.Fs.Stat(abs)
	if err != nil {
		return Target{}, fmt.Errorf("input directory '%s' (resolved to '%s') does not exist or cannot be accessed: %w", dir, abs, err)
	}
	if !info.IsDir() {
		return Target{}, fmt.Errorf("input directory '%s' (resolved to '%s') is not a directory", dir, abs)
	}

	target := Target{Dir: dir, AbsDir: abs, Base: abs}
	if cfg.ProjectRoot {
		root, found, err := project.FindRoot(cfg.Fs, abs)
		if err != nil {
			return Target{}, err
		}
		if found {
			cfg.Logger.Debug("Found .git at %s. Using it as ignore scan root for %s.", root, dir)
			target.Base = root
		} else {
			cfg.Logger.Debug("No .git directory found above %s. Using the directory itself.", abs)
		}
	}
	return target, nil
}

func progressPrinter(out io.Writer) walker.ProgressCallback {
	return func(stats walker.ProgressStats) {
		var statusLine string
		if stats.CurrentFilePath != "" {
			// Truncate the path if it's too long
			path := stats.CurrentFilePath
			if len(path) > 40 {
				path = "..." + path[len(path)-37:]
			}
			statusLine = fmt.Sprintf("\rProcessing: %-40s | Files: %d", path, stats.ProcessedFiles)
		} else {
			statusLine = fmt.Sprintf("\rScanning... | Files: %d (skipped %d) | Dirs: %d",
				stats.TotalFiles, stats.SkippedFiles, stats.TotalDirs)
		}
		fmt.Fprint(out, statusLine)
	}
}
