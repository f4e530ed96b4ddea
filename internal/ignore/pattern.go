package ignore

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// SegmentKind tags how one slash-separated piece of a pattern is matched.
type SegmentKind uint8

const (
	// Literal segments compare the name byte for byte.
	Literal SegmentKind = iota
	// SingleWildcard segments use only "?" and "[...]", each of which
	// consumes exactly one character.
	SingleWildcard
	// MultiWildcard segments contain "*", matching any run of characters
	// within the segment.
	MultiWildcard
	// RecursiveWildcard is a whole "**" segment and spans zero or more
	// path segments.
	RecursiveWildcard
)

func (k SegmentKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case SingleWildcard:
		return "single-wildcard"
	case MultiWildcard:
		return "multi-wildcard"
	case RecursiveWildcard:
		return "recursive-wildcard"
	default:
		return "unknown"
	}
}

// Segment is one compiled piece of a pattern.
type Segment struct {
	Kind SegmentKind
	// Text is the unescaped name for Literal segments and the gitignore
	// source for wildcard segments.
	Text string

	g glob.Glob
}

// compileSegment classifies raw and prepares its matcher. Wildcard segments
// that do not compile (an unmatched "[" or a dangling "\") fall back to a
// literal comparison.
func compileSegment(raw string) Segment {
	if raw == "**" {
		return Segment{Kind: RecursiveWildcard, Text: raw}
	}
	raw = collapseStars(raw)

	kind := Literal
	escaped := false
	for _, ch := range raw {
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '*':
			kind = MultiWildcard
		case (ch == '?' || ch == '[') && kind == Literal:
			kind = SingleWildcard
		}
	}

	if kind == Literal {
		return Segment{Kind: Literal, Text: unescape(raw)}
	}
	if raw == "*" {
		return Segment{Kind: MultiWildcard, Text: raw}
	}

	g, err := glob.Compile(toGlobSyntax(raw))
	if err != nil {
		return Segment{Kind: Literal, Text: unescape(raw)}
	}
	return Segment{Kind: kind, Text: raw, g: g}
}

// match reports whether one path component satisfies the segment.
func (s Segment) match(name string) bool {
	switch s.Kind {
	case Literal:
		return s.Text == name
	case RecursiveWildcard:
		return true
	default:
		if s.g == nil {
			// bare "*"
			return name != ""
		}
		return s.g.Match(name)
	}
}

// matchSegments matches pattern segments against path components, letting
// "**" absorb any number of components.
func matchSegments(pattern []Segment, parts []string) bool {
	for len(pattern) > 0 {
		seg := pattern[0]
		if seg.Kind == RecursiveWildcard {
			rest := pattern[1:]
			if len(rest) == 0 {
				// a trailing "**" matches inside the prefix, never the prefix itself
				return len(parts) > 0
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(rest, parts[i:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 || !seg.match(parts[0]) {
			return false
		}
		pattern, parts = pattern[1:], parts[1:]
	}
	return len(parts) == 0
}

// Matches reports whether the rule applies to rel, a slash-separated path
// relative to the rule's own directory. Directory-only rules match a
// directory and also any path beneath a matching directory.
func (r *Rule) Matches(rel string, isDir bool) bool {
	if rel == "" || len(r.segments) == 0 {
		return false
	}
	if (!r.DirectoryOnly || isDir) && r.matchPath(rel) {
		return true
	}
	if !r.DirectoryOnly {
		return false
	}
	for i := len(rel) - 1; i > 0; i-- {
		if rel[i] == '/' && r.matchPath(rel[:i]) {
			return true
		}
	}
	return false
}

func (r *Rule) matchPath(rel string) bool {
	if r.floating() {
		return r.segments[0].match(path.Base(rel))
	}
	return matchSegments(r.segments, strings.Split(rel, "/"))
}

// floating rules had no slash in their pattern and match the final
// component at any depth below their directory.
func (r *Rule) floating() bool {
	return !r.Anchored && len(r.segments) == 1 && !strings.Contains(r.Pattern, "/")
}

// collapseStars turns "**" runs inside a segment into a single "*"; only a
// whole-segment "**" is recursive.
func collapseStars(s string) string {
	for strings.Contains(s, "**") {
		s = strings.ReplaceAll(s, "**", "*")
	}
	return s
}

// toGlobSyntax rewrites a gitignore segment for gobwas/glob: braces are not
// special in gitignore and "[^" is spelled "[!".
func toGlobSyntax(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	inClass := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			b.WriteByte(ch)
			escaped = false
		case ch == '\\':
			b.WriteByte(ch)
			escaped = true
		case inClass:
			if ch == ']' {
				inClass = false
			}
			b.WriteByte(ch)
		case ch == '[':
			inClass = true
			b.WriteByte(ch)
			if i+1 < len(s) && s[i+1] == '^' {
				b.WriteByte('!')
				i++
			}
		case ch == '{' || ch == '}':
			b.WriteByte('\\')
			b.WriteByte(ch)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// unescape drops the backslash in front of escaped characters.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteByte(s[i])
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}
