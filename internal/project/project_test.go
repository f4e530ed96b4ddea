package project

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/repo/.git", 0o755))
	require.NoError(t, fsys.MkdirAll("/repo/src/pkg", 0o755))

	root, found, err := FindRoot(fsys, "/repo/src/pkg")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/repo", root)

	root, found, err = FindRoot(fsys, "/repo")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/repo", root)
}

func TestFindRootGitFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/work/tree/.git", []byte("gitdir: /repo/.git/worktrees/tree\n"), 0o644))
	require.NoError(t, fsys.MkdirAll("/work/tree/cmd", 0o755))

	root, found, err := FindRoot(fsys, "/work/tree/cmd")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/work/tree", root)
}

func TestFindRootMissing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/plain/dir", 0o755))

	root, found, err := FindRoot(fsys, "/plain/dir")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "/plain/dir", root)
}

func TestRelativeDir(t *testing.T) {
	rel, err := RelativeDir("/repo", "/repo/src/pkg")
	require.NoError(t, err)
	assert.Equal(t, "src/pkg", rel)

	rel, err = RelativeDir("/repo", "/repo")
	require.NoError(t, err)
	assert.Equal(t, "", rel)

	_, err = RelativeDir("/repo/src", "/repo")
	assert.Error(t, err)
}
