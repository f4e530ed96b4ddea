package ignore

import (
	"bytes"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// utf8BOM is dropped from the start of a rule file, as git does.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Compile turns the raw text of one rule file into rules, in file order.
// dir is the owning directory relative to the ignore base and source names
// the file for diagnostics. Compile never fails: a line it cannot make
// sense of is matched literally or dropped.
func Compile(src []byte, dir, source string) []Rule {
	src = bytes.TrimPrefix(src, utf8BOM)
	rules := make([]Rule, 0, 16)
	for i, line := range bytes.Split(src, []byte("\n")) {
		rule, ok := compileLine(string(line))
		if !ok {
			continue
		}
		rule.SourceOrder = i + 1
		rule.Dir = dir
		rule.Source = source
		rules = append(rules, rule)
	}
	return rules
}

// CompilePatterns compiles in-memory patterns, one per element.
func CompilePatterns(patterns []string, dir, source string) []Rule {
	return Compile([]byte(strings.Join(patterns, "\n")), dir, source)
}

func compileLine(line string) (Rule, bool) {
	line = strings.TrimSuffix(line, "\r")
	line = trimTrailingWhitespace(line)
	if line == "" || line[0] == '#' {
		return Rule{}, false
	}
	line = norm.NFC.String(line)

	var rule Rule
	switch {
	case strings.HasPrefix(line, `\#`), strings.HasPrefix(line, `\!`):
		line = line[1:]
	case line[0] == '!':
		rule.Negated = true
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") {
		rule.DirectoryOnly = true
		line = strings.TrimRight(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		rule.Anchored = true
		line = strings.TrimLeft(line, "/")
	}
	if line == "" {
		return Rule{}, false
	}

	rule.Pattern = line
	parts := strings.Split(line, "/")
	rule.segments = make([]Segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		rule.segments = append(rule.segments, compileSegment(part))
	}
	return rule, true
}

// trimTrailingWhitespace strips spaces at the end of line unless the last
// one is escaped with a backslash. Tabs are kept, as in git.
func trimTrailingWhitespace(line string) string {
	for len(line) > 0 {
		last := line[len(line)-1]
		if last != ' ' {
			return line
		}
		if isEscaped(line, len(line)-1) {
			return line
		}
		line = line[:len(line)-1]
	}
	return line
}

func isEscaped(line string, index int) bool {
	count := 0
	for i := index - 1; i >= 0 && line[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}
