// Package ignore provides file/directory pattern matching for exclusion
package ignore

import (
	"github.com/spf13/afero"

	"github.com/bethropolis/llmcontext/internal/utils"
)

// Verdict is the outcome of resolving one path against its rule chain.
type Verdict uint8

const (
	Included Verdict = iota
	Ignored
)

func (v Verdict) String() string {
	if v == Ignored {
		return "ignored"
	}
	return "included"
}

// Rule is one compiled line of a rule file. A Rule is never modified after
// Compile returns it.
type Rule struct {
	// Pattern is the pattern text after the negation, anchor and
	// directory markers have been removed.
	Pattern string
	// Negated rules re-include what earlier rules ignored.
	Negated bool
	// DirectoryOnly rules match directories and the paths beneath them.
	DirectoryOnly bool
	// Anchored rules match relative to Dir only, never at a deeper level.
	Anchored bool
	// SourceOrder is the 1-based line number in Source.
	SourceOrder int
	// Dir is the owning directory, slash-separated and relative to the
	// ignore base ("" for the base itself).
	Dir string
	// Source names the rule file (or other origin) the line came from.
	Source string

	segments []Segment
}

// Segments returns the compiled path segments of the rule.
func (r *Rule) Segments() []Segment {
	return r.segments
}

// String renders the rule back in gitignore syntax.
func (r *Rule) String() string {
	s := r.Pattern
	if r.Anchored {
		s = "/" + s
	}
	if r.DirectoryOnly {
		s += "/"
	}
	if r.Negated {
		s = "!" + s
	}
	return s
}

// Diagnostic records a non-fatal problem met while loading rule files.
type Diagnostic struct {
	Path string
	Err  error
}

// IgnoreMatcher determines whether a file or directory should be ignored
type IgnoreMatcher struct {
	index *Index
	// custom holds patterns supplied on the command line; it sits at the
	// head of every chain.
	custom *RuleSet

	// Configuration flags
	rootDir        string
	ignoreHidden   bool
	ignoreGit      bool
	customPatterns []string
	ruleFiles      []string
	fs             afero.Fs
	logger         utils.Logger
	disabled       bool
}

// Config holds configuration options for the ignore matcher
type Config struct {
	RootDir      string
	IgnoreHidden bool
	IgnoreGit    bool
	CustomRules  []string
	RuleFiles    []string
	Fs           afero.Fs
	Logger       utils.Logger
	Disabled     bool
}
