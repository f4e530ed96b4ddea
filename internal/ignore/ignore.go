// Package ignore provides file/directory pattern matching for exclusion
//
// Rule files (.gitignore and .llmignore by default) are compiled per
// directory into RuleSets. A path is resolved against the Chain of RuleSets
// from the ignore base down to its containing directory, and the last
// matching rule wins. Hidden entries, .git directories and custom patterns
// are layered on top. The package uses the functional options pattern for
// configuration.
package ignore

// NewDefaultMatcher creates an IgnoreMatcher with default settings
func NewDefaultMatcher(rootDir string) (*IgnoreMatcher, error) {
	return New(rootDir)
}

// NewFromConfig creates an IgnoreMatcher from a Config struct
func NewFromConfig(cfg Config) (*IgnoreMatcher, error) {
	options := []Option{
		WithHiddenIgnore(cfg.IgnoreHidden),
		WithGitIgnore(cfg.IgnoreGit),
		WithDisabled(cfg.Disabled),
		WithRuleFiles(cfg.RuleFiles),
		WithFs(cfg.Fs),
		WithLogger(cfg.Logger),
	}

	if len(cfg.CustomRules) > 0 {
		options = append(options, WithCustomRules(cfg.CustomRules))
	}

	return New(cfg.RootDir, options...)
}

// CreateDisabledMatcher returns a matcher that ignores nothing
func CreateDisabledMatcher() *IgnoreMatcher {
	matcher, _ := New(".", WithDisabled(true))
	return matcher
}

// IsIgnored is a convenience function to check if a path should be ignored
func IsIgnored(matcher *IgnoreMatcher, path string, isDir bool) bool {
	if matcher == nil {
		return false
	}
	return matcher.Check(path, isDir) == Ignored
}
