package setup

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/llmcontext/internal/walker"
)

func newFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, name := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(name), 0o644))
	}
	return fsys
}

func TestConfigureWalkerProjectRoot(t *testing.T) {
	fsys := newFs(t, "/repo/.git/HEAD", "/repo/.gitignore", "/repo/svc/a/main.go", "/repo/svc/b/main.go", "/other/x.go")
	var infos []string
	infoLog := func(format string, args ...interface{}) {
		infos = append(infos, fmt.Sprintf(format, args...))
	}

	targets, opts, err := ConfigureWalker(WalkerConfig{
		Targets:     []string{"/repo/svc/a", "/repo/svc/b", "/other"},
		Fs:          fsys,
		IgnoreGit:   true,
		ProjectRoot: true,
		Extensions:  []string{"go"},
	}, infoLog)
	require.NoError(t, err)

	require.Len(t, targets, 3)
	assert.Equal(t, "/repo", targets[0].Base)
	assert.Equal(t, "/repo", targets[1].Base)
	assert.Equal(t, "/other", targets[2].Base)
	assert.Same(t, targets[0].Matcher, targets[1].Matcher)
	assert.NotSame(t, targets[0].Matcher, targets[2].Matcher)
	assert.NotEmpty(t, opts)
	assert.Contains(t, infos, "Filtering enabled. Only including extensions: .go")
}

func TestConfigureWalkerRejectsBadTargets(t *testing.T) {
	fsys := newFs(t, "/proj/file.txt")

	_, _, err := ConfigureWalker(WalkerConfig{Targets: []string{"/missing"}, Fs: fsys}, func(string, ...interface{}) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	_, _, err = ConfigureWalker(WalkerConfig{Targets: []string{"/proj/file.txt"}, Fs: fsys}, func(string, ...interface{}) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	fn := progressPrinter(&buf)

	fn(walker.ProgressStats{TotalFiles: 4, SkippedFiles: 1, TotalDirs: 2})
	assert.Equal(t, "\rScanning... | Files: 4 (skipped 1) | Dirs: 2", buf.String())

	buf.Reset()
	fn(walker.ProgressStats{CurrentFilePath: "a/very/long/path/that/needs/to/be/truncated/file.go", ProcessedFiles: 7})
	assert.Contains(t, buf.String(), "Processing: ...")
	assert.Contains(t, buf.String(), "| Files: 7")
}
