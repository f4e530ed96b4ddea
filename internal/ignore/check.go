package ignore

import (
	"path"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Reason tells which check excluded a path.
type Reason uint8

const (
	NotIgnored Reason = iota
	HiddenEntry
	GitDir
	RuleMatch
)

func (r Reason) String() string {
	switch r {
	case HiddenEntry:
		return "hidden"
	case GitDir:
		return "git directory"
	case RuleMatch:
		return "rule"
	default:
		return "not ignored"
	}
}

// ShouldIgnore checks if a file or directory should be ignored. chain must
// be the chain of the directory containing relativePath.
func (m *IgnoreMatcher) ShouldIgnore(chain Chain, relativePath string, isDir bool) bool {
	reason, _ := m.Decide(chain, relativePath, isDir)
	return reason != NotIgnored
}

// Decide is ShouldIgnore that also reports which check excluded the path
// and, for RuleMatch, the deciding rule.
func (m *IgnoreMatcher) Decide(chain Chain, relativePath string, isDir bool) (Reason, *Rule) {
	if m == nil || m.disabled {
		return NotIgnored, nil
	}
	if relativePath == "" || relativePath == "." {
		// Never ignore the root itself
		return NotIgnored, nil
	}

	base := path.Base(relativePath)
	if m.ignoreHidden && strings.HasPrefix(base, ".") {
		m.logger.Debug("ignore: Ignored %q (hidden file rule)", relativePath)
		return HiddenEntry, nil
	}
	if m.ignoreGit && isDir && base == ".git" {
		m.logger.Debug("ignore: Ignored %q (.git rule)", relativePath)
		return GitDir, nil
	}

	verdict, rule := Explain(chain, norm.NFC.String(relativePath), isDir)
	if verdict == Ignored {
		m.logger.Debug("ignore: Ignored %q by %q (%s)", relativePath, rule.String(), ruleOrigin(rule))
		return RuleMatch, rule
	}
	if rule != nil {
		m.logger.Debug("ignore: Included %q by %q (%s)", relativePath, rule.String(), ruleOrigin(rule))
	}
	return NotIgnored, nil
}

// Check resolves relativePath without a walk: the path is Ignored when it
// or any directory above it (below the ignore base) is ignored.
func (m *IgnoreMatcher) Check(relativePath string, isDir bool) Verdict {
	if m == nil || m.disabled {
		return Included
	}
	relativePath = strings.Trim(path.Clean("/"+relativePath), "/")
	if relativePath == "" {
		return Included
	}

	parts := strings.Split(relativePath, "/")
	parent := ""
	for i, part := range parts {
		current := path.Join(parent, part)
		last := i == len(parts)-1
		if m.ShouldIgnore(m.ChainTo(parent), current, isDir || !last) {
			return Ignored
		}
		parent = current
	}
	return Included
}

func ruleOrigin(r *Rule) string {
	if r.SourceOrder > 0 {
		return r.Source + ":" + strconv.Itoa(r.SourceOrder)
	}
	return r.Source
}
