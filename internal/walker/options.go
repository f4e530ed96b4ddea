// Package walker handles directory traversal and file processing
package walker

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/bethropolis/llmcontext/internal/utils"
)

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger       utils.Logger
	Fs           afero.Fs
	Concurrent   bool
	MaxWorkers   int
	MaxFileSize  int64
	ExtensionMap map[string]struct{}
	// ExcludedPaths holds absolute, cleaned paths that are never
	// aggregated, such as the output file.
	ExcludedPaths map[string]struct{}
	Context       context.Context
	ProgressFn    ProgressCallback
}

// ProgressCallback is a function that receives progress updates
type ProgressCallback func(stats ProgressStats)

// ProgressStats holds statistics about the walk progress
type ProgressStats struct {
	TotalFiles      int64  // Total files seen
	ProcessedFiles  int64  // Files that passed all filters and were processed
	SkippedFiles    int64  // Files that were skipped for any reason
	TotalDirs       int64  // Total directories seen
	SkippedDirs     int64  // Directories that were skipped
	CurrentFilePath string // Path of the current file being processed (relative)
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:      utils.NoopLogger{},
		Fs:          afero.NewOsFs(),
		Concurrent:  false,
		MaxWorkers:  10,
		MaxFileSize: 0, // No limit
		Context:     context.Background(),
	}
}

func buildOptions(opts []Option) WalkOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithFs sets the filesystem the walker lists and reads.
func WithFs(fsys afero.Fs) Option {
	return func(opts *WalkOptions) {
		if fsys != nil {
			opts.Fs = fsys
		}
	}
}

// WithConcurrency enables or disables concurrent file processing
func WithConcurrency(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.Concurrent = enabled
	}
}

// WithMaxWorkers sets the maximum number of concurrent workers
func WithMaxWorkers(workers int) Option {
	return func(opts *WalkOptions) {
		if workers > 0 {
			opts.MaxWorkers = workers
		}
	}
}

// WithMaxFileSize sets the maximum file size to read in bytes
func WithMaxFileSize(maxBytes int64) Option {
	return func(opts *WalkOptions) {
		opts.MaxFileSize = maxBytes
	}
}

// WithExtensions sets the file extensions to include (with or without the dot)
func WithExtensions(extensions []string) Option {
	return func(opts *WalkOptions) {
		if len(extensions) == 0 {
			opts.ExtensionMap = nil
			return
		}
		extMap := make(map[string]struct{}, len(extensions))
		for _, ext := range extensions {
			extMap[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
		}
		opts.ExtensionMap = extMap
	}
}

// WithExcludedPaths keeps the given files out of the aggregation.
func WithExcludedPaths(paths ...string) Option {
	return func(opts *WalkOptions) {
		if opts.ExcludedPaths == nil {
			opts.ExcludedPaths = make(map[string]struct{}, len(paths))
		}
		for _, p := range paths {
			if p == "" {
				continue
			}
			if abs, err := filepath.Abs(p); err == nil {
				opts.ExcludedPaths[abs] = struct{}{}
			}
		}
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(o *WalkOptions) {
		o.ProgressFn = fn
	}
}
