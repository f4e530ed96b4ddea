// Package walker handles directory traversal and file processing
package walker

import (
	"sync"
)

// FileEntry is one included file handed to the aggregator.
type FileEntry struct {
	// Root is the scan root the file was found under, as given by the caller.
	Root string
	// RelativePath is slash-separated and relative to Root.
	RelativePath string
	Size         int64
	Content      []byte
}

// WalkFunc is the callback function type used by Walk and Process. err is
// non-nil when the file could not be read; entry.Content is nil then.
type WalkFunc func(entry FileEntry, err error) error

// SkippedReason clarifies why a file/directory was not processed.
type SkippedReason string

const (
	ReasonIgnoredHidden      SkippedReason = "Ignored (Hidden Rule)"
	ReasonIgnoredRule        SkippedReason = "Ignored (Gitignore/Llmignore/Custom Rule)"
	ReasonIgnoredGitDir      SkippedReason = "Ignored (.git Directory)"
	ReasonFilteredExtension  SkippedReason = "Filtered (Extension Mismatch)"
	ReasonSkippedSizeLimit   SkippedReason = "Skipped (Size Limit Exceeded)"
	ReasonSkippedNotRegular  SkippedReason = "Skipped (Not a Regular File)"
	ReasonSkippedOutputFile  SkippedReason = "Skipped (Output File)"
	ReasonSkippedPermError   SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedWalkError   SkippedReason = "Skipped (Walk Error)"
	ReasonSkippedReadError   SkippedReason = "Skipped (Read Error)"
	ReasonSkippedPathError   SkippedReason = "Skipped (Path Calculation Error)"
	ReasonUnreadableRuleFile SkippedReason = "Warning (Unreadable Ignore File)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker is a struct to track skipped items
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns a copy of the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	out := make([]SkippedItem, len(st.items))
	copy(out, st.items)
	return out
}

// PlannedFile is a file that passed every check during collection.
type PlannedFile struct {
	RelativePath string
	FullPath     string
	Size         int64
}

// Plan is the result of Collect: the included files in pre-order and the
// entries that were left out.
type Plan struct {
	// Root is the scan root as given by the caller.
	Root string
	// AbsRoot is Root made absolute.
	AbsRoot string
	// Prefix is AbsRoot relative to the ignore base ("" when they match).
	Prefix string
	Files  []PlannedFile
	Dirs   int

	tracker *SkippedTracker
}

// Skipped returns the entries left out so far, in the order they were met.
func (p *Plan) Skipped() []SkippedItem {
	if p == nil || p.tracker == nil {
		return nil
	}
	return p.tracker.Items()
}

// Paths lists the planned files' relative paths.
func (p *Plan) Paths() []string {
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		out[i] = f.RelativePath
	}
	return out
}
