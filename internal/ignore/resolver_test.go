package ignore

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleSet(dir string, lines ...string) *RuleSet {
	return NewRuleSet(dir, CompilePatterns(lines, dir, path.Join(dir, ".gitignore")))
}

func TestResolveWithoutRules(t *testing.T) {
	chain := Chain{ruleSet(""), ruleSet("sub")}
	for _, p := range []string{"a.txt", "sub/b.txt", "sub/deep/c"} {
		assert.Equal(t, Included, Resolve(chain, p, false), p)
	}
	assert.Equal(t, Included, Resolve(nil, "x", false))
}

func TestResolveRootRuleAppliesAtAnyDepth(t *testing.T) {
	chain := Chain{ruleSet("", "*.log")}

	assert.Equal(t, Ignored, Resolve(chain, "a.log", false))
	assert.Equal(t, Ignored, Resolve(chain, "x/y/z.log", false))
	assert.Equal(t, Included, Resolve(chain, "x/y/z.txt", false))
}

func TestResolveLaterLineWins(t *testing.T) {
	chain := Chain{ruleSet("", "*.log", "!keep.log")}

	assert.Equal(t, Included, Resolve(chain, "keep.log", false))
	assert.Equal(t, Included, Resolve(chain, "deep/keep.log", false))
	assert.Equal(t, Ignored, Resolve(chain, "other.log", false))

	reversed := Chain{ruleSet("", "!keep.log", "*.log")}
	assert.Equal(t, Ignored, Resolve(reversed, "keep.log", false))
}

func TestResolveDeeperDirectoryOverrides(t *testing.T) {
	root := ruleSet("", "*.txt")
	sub := ruleSet("sub", "!important.txt")
	chain := Chain{root, sub}

	assert.Equal(t, Included, Resolve(chain, "sub/important.txt", false))
	assert.Equal(t, Ignored, Resolve(chain, "sub/other.txt", false))
	assert.Equal(t, Ignored, Resolve(Chain{root}, "other.txt", false))
}

func TestResolveSiblingIndependence(t *testing.T) {
	root := ruleSet("")
	a := ruleSet("a", "*.txt")

	assert.Equal(t, Ignored, Resolve(Chain{root, a}, "a/x.txt", false))
	assert.Equal(t, Included, Resolve(Chain{root, a}, "b/x.txt", false))
	assert.Equal(t, Included, Resolve(Chain{root, a}, "ab/x.txt", false))
}

func TestResolveAnchoredIsRelativeToOwner(t *testing.T) {
	chain := Chain{ruleSet(""), ruleSet("sub", "/gen.go")}

	assert.Equal(t, Ignored, Resolve(chain, "sub/gen.go", false))
	assert.Equal(t, Included, Resolve(chain, "sub/pkg/gen.go", false))
	assert.Equal(t, Included, Resolve(chain, "gen.go", false))
}

func TestResolveConcreteScenario(t *testing.T) {
	root := ruleSet("", "*.log")
	sub := ruleSet("sub", "*.log", "!important.log")

	rootChain := Chain{root}
	subChain := rootChain.Append(sub)

	assert.Equal(t, Included, Resolve(rootChain, "a.py", false))
	assert.Equal(t, Ignored, Resolve(rootChain, "a.log", false))
	assert.Equal(t, Included, Resolve(rootChain, "sub", true))
	assert.Equal(t, Included, Resolve(subChain, "sub/b.py", false))
	assert.Equal(t, Included, Resolve(subChain, "sub/important.log", false))
}

func TestExplainReturnsDecidingRule(t *testing.T) {
	chain := Chain{ruleSet("", "*.log"), ruleSet("sub", "!keep.log")}

	v, r := Explain(chain, "sub/keep.log", false)
	assert.Equal(t, Included, v)
	require.NotNil(t, r)
	assert.Equal(t, "!keep.log", r.String())
	assert.Equal(t, "sub/.gitignore", r.Source)

	v, r = Explain(chain, "notes.md", false)
	assert.Equal(t, Included, v)
	assert.Nil(t, r)
}

func TestChainAppendDoesNotShareBacking(t *testing.T) {
	base := make(Chain, 0, 4)
	base = append(base, ruleSet(""))

	a := base.Append(ruleSet("a", "*"))
	b := base.Append(ruleSet("b"))

	require.Len(t, a, 2)
	require.Len(t, b, 2)
	assert.Equal(t, "a", a[1].Dir)
	assert.Equal(t, "b", b[1].Dir)
	assert.Len(t, base, 1)
}
