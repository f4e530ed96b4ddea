// Package project locates the repository root that owns a directory.
package project

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Marker is the entry whose presence makes a directory a project root. It
// may be a directory or, for worktrees and submodules, a file.
const Marker = ".git"

// FindRoot walks upward from start to the nearest directory containing
// Marker. It returns the absolute root and true, or the absolute start and
// false when no ancestor qualifies.
func FindRoot(fsys afero.Fs, start string) (string, bool, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("project: failed to resolve %q: %w", start, err)
	}

	dir := abs
	for {
		if ok, _ := afero.Exists(fsys, filepath.Join(dir, Marker)); ok {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, false, nil
		}
		dir = parent
	}
}

// RelativeDir expresses target relative to root in slash form ("" when they
// are the same directory).
func RelativeDir(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("project: %q is not below %q: %w", target, root, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "", nil
	}
	if rel == ".." || len(rel) > 3 && rel[:3] == "../" {
		return "", fmt.Errorf("project: %q is not below %q", target, root)
	}
	return rel, nil
}
