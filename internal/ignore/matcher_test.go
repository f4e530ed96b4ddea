package ignore

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T, fsys afero.Fs, opts ...Option) *IgnoreMatcher {
	t.Helper()
	m, err := New("/proj", append([]Option{WithFs(fsys)}, opts...)...)
	require.NoError(t, err)
	return m
}

func TestMatcherDefaults(t *testing.T) {
	m := newTestMatcher(t, afero.NewMemMapFs())

	assert.Equal(t, "/proj", m.RootDir())
	assert.NotNil(t, m.Index())
	assert.Equal(t, Ignored, m.Check(".git", true))
	assert.Equal(t, Ignored, m.Check(".git/config", false))
	assert.Equal(t, Included, m.Check(".gitignore", false))
	assert.Equal(t, Included, m.Check(".env", false))
	assert.Equal(t, Included, m.Check("", true))
}

func TestMatcherHiddenAndGitOptions(t *testing.T) {
	fsys := afero.NewMemMapFs()

	hidden := newTestMatcher(t, fsys, WithHiddenIgnore(true))
	assert.Equal(t, Ignored, hidden.Check(".env", false))
	assert.Equal(t, Ignored, hidden.Check(".config/app.yaml", false))
	assert.Equal(t, Included, hidden.Check("src/app.go", false))

	reason, rule := hidden.Decide(nil, "src/.cache", true)
	assert.Equal(t, HiddenEntry, reason)
	assert.Nil(t, rule)

	withGit := newTestMatcher(t, fsys, WithGitIgnore(false))
	assert.Equal(t, Included, withGit.Check(".git/HEAD", false))
}

func TestMatcherPrunedDirectoryHidesNegation(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/proj/.gitignore", "build/\n")
	writeFile(t, fsys, "/proj/build/.gitignore", "!secret.bin\n")

	m := newTestMatcher(t, fsys)

	assert.Equal(t, Ignored, m.Check("build", true))
	assert.Equal(t, Ignored, m.Check("build/secret.bin", false))
	assert.Equal(t, Included, m.Check("src/build.go", false))
}

func TestMatcherChainTo(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/proj/.gitignore", "*.txt\n")
	writeFile(t, fsys, "/proj/a/b/.llmignore", "!keep.txt\n")

	m := newTestMatcher(t, fsys, WithCustomRules([]string{"*.bak"}))
	chain := m.ChainTo("a/b")

	require.Len(t, chain, 4)
	assert.Equal(t, "", chain[0].Dir)
	assert.Equal(t, "command line", chain[0].Rules()[0].Source)
	assert.Equal(t, "", chain[1].Dir)
	assert.Equal(t, "a", chain[2].Dir)
	assert.Equal(t, "a/b", chain[3].Dir)

	assert.True(t, m.ShouldIgnore(chain, "a/b/x.txt", false))
	assert.False(t, m.ShouldIgnore(chain, "a/b/keep.txt", false))
	assert.True(t, m.ShouldIgnore(chain, "a/b/x.bak", false))
}

func TestMatcherRuleFilesOverrideCustomRules(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/proj/.llmignore", "!important.log\n")

	m := newTestMatcher(t, fsys, WithCustomRules([]string{"*.log"}))

	assert.Equal(t, Ignored, m.Check("debug.log", false))
	assert.Equal(t, Included, m.Check("important.log", false))
}

func TestMatcherNormalizesUnicode(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/proj/.gitignore", "café.txt\n")

	m := newTestMatcher(t, fsys)

	assert.Equal(t, Ignored, m.Check("café.txt", false))
	assert.Equal(t, Ignored, m.Check("cafe\u0301.txt", false))
}

func TestDisabledMatcher(t *testing.T) {
	m := CreateDisabledMatcher()

	assert.Nil(t, m.Index())
	assert.Nil(t, m.ChainTo("a"))
	assert.False(t, m.ShouldIgnore(nil, ".git", true))
	assert.False(t, IsIgnored(m, ".git/config", false))
	assert.False(t, IsIgnored(nil, "x", false))
}

func TestNewFromConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/proj/.rules", "*.gen\n")

	m, err := NewFromConfig(Config{
		RootDir:     "/proj",
		IgnoreGit:   true,
		CustomRules: []string{"tmp/"},
		RuleFiles:   []string{".rules"},
		Fs:          fsys,
	})
	require.NoError(t, err)

	assert.True(t, IsIgnored(m, "x.gen", false))
	assert.True(t, IsIgnored(m, "tmp/file", false))
	assert.False(t, IsIgnored(m, "x.go", false))
}
