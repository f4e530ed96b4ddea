package ignore

import (
	"strings"
	"testing"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/stretchr/testify/assert"
)

// TestCompatibleWithGoGitignore compares verdicts for common patterns with
// an independent gitignore implementation.
func TestCompatibleWithGoGitignore(t *testing.T) {
	lines := []string{"*.log", "!keep.log", "*.tmp", "/only-root.txt"}
	reference := gitignore.New(strings.NewReader(strings.Join(lines, "\n")), "/repo", nil)
	chain := Chain{NewRuleSet("", CompilePatterns(lines, "", ".gitignore"))}

	paths := []string{
		"a.log",
		"keep.log",
		"deep/x.log",
		"deep/keep.log",
		"notes.txt",
		"x.tmp",
		"only-root.txt",
		"sub/only-root.txt",
	}
	for _, p := range paths {
		want := Included
		if m := reference.Relative(p, false); m != nil && m.Ignore() {
			want = Ignored
		}
		assert.Equal(t, want, Resolve(chain, p, false), p)
	}
}
