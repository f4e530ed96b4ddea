package ignore

import (
	"github.com/spf13/afero"

	"github.com/bethropolis/llmcontext/internal/utils"
)

// Option functions for configuration
type Option func(*IgnoreMatcher)

// WithHiddenIgnore excludes every entry whose name starts with a dot.
func WithHiddenIgnore(ignore bool) Option {
	return func(m *IgnoreMatcher) {
		m.ignoreHidden = ignore
	}
}

// WithGitIgnore prunes .git directories regardless of rule files.
func WithGitIgnore(ignore bool) Option {
	return func(m *IgnoreMatcher) {
		m.ignoreGit = ignore
	}
}

// WithCustomRules adds gitignore-syntax patterns evaluated before any rule
// file, relative to the matcher root.
func WithCustomRules(patterns []string) Option {
	return func(m *IgnoreMatcher) {
		m.customPatterns = patterns
	}
}

// WithRuleFiles sets the rule-file names read in each directory. Their
// order is the precedence order inside a directory.
func WithRuleFiles(names []string) Option {
	return func(m *IgnoreMatcher) {
		if len(names) > 0 {
			m.ruleFiles = names
		}
	}
}

func WithFs(fsys afero.Fs) Option {
	return func(m *IgnoreMatcher) {
		if fsys != nil {
			m.fs = fsys
		}
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(m *IgnoreMatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithDisabled(disabled bool) Option {
	return func(m *IgnoreMatcher) {
		m.disabled = disabled
	}
}
