// Package summary handles display of scan results and statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bethropolis/llmcontext/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Results are the totals of one run.
type Results struct {
	Files       int64
	BinaryFiles int64
	Directories int
	Roots       int
	Output      string
	Duration    time.Duration
}

// DisplayResults shows the end results of a scan operation
func DisplayResults(logger Logger, res Results, quiet bool) {
	if quiet {
		return
	}
	logger.Info("Found and processed %d files (%d binary or non-UTF-8) in %d directories.",
		res.Files, res.BinaryFiles, res.Directories)
	if res.Roots > 1 {
		logger.Info("Successfully processed %d directories. Output written to %s", res.Roots, res.Output)
	} else {
		logger.Info("Successfully processed directory. Output written to %s", res.Output)
	}
	logger.Info("Scan complete in %v.", res.Duration.Round(time.Millisecond))
}

// DisplayWarnings reports unreadable rule files and directories, which are
// otherwise only visible in verbose mode.
func DisplayWarnings(logger Logger, skippedItems []walker.SkippedItem) int {
	count := 0
	for _, item := range skippedItems {
		switch item.Reason {
		case walker.ReasonUnreadableRuleFile:
			logger.Warn("Could not read ignore file %s; its rules were not applied.", item.Path)
		case walker.ReasonSkippedPermError:
			logger.Warn("Permission denied for %s; it was skipped.", item.Path)
		default:
			continue
		}
		count++
	}
	return count
}

// DisplaySkippedItems formats and prints information about skipped items
func DisplaySkippedItems(
	logger Logger,
	skippedItems []walker.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) > 0 {
		sorted := make([]walker.SkippedItem, len(skippedItems))
		copy(sorted, skippedItems)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Path < sorted[j].Path
		})
		for _, item := range sorted {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			fmt.Fprintf(output, "Skipped %s: %-50s [%s]\n", typeStr, item.Path, item.Reason)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
