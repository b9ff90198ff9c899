package gitstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ebbvc/ebb/internal/gitstore"
)

func TestCommitAndReadRevisionText(t *testing.T) {
	dir := t.TempDir()
	store, err := gitstore.Init(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("hello"), 0o644))
	_, err = store.CommitRevision(0, "r0:\nfamily: eids 0 1 b-instances 1\n", "")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("world"), 0o644))
	_, err = store.CommitRevision(1, "r1:\nfamily: eids 0 2 b-instances 1\n", "")
	require.NoError(t, err)

	count, err := store.RevisionCount()
	require.NoError(t, err)
	require.Equal(t, 2, count)

	text0, err := store.ReadRevisionText(0)
	require.NoError(t, err)
	require.Contains(t, text0, "r0:")

	text1, err := store.ReadRevisionText(1)
	require.NoError(t, err)
	require.Contains(t, text1, "r1:")

	content, err := store.ResolveRRPath(0, "f")
	require.NoError(t, err)
	require.Equal(t, "hello", content)

	content, err = store.ResolveRRPath(1, "f")
	require.NoError(t, err)
	require.Equal(t, "world", content)
}

func TestReadRevisionText_OutOfRange(t *testing.T) {
	dir := t.TempDir()
	store, err := gitstore.Init(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))
	_, err = store.CommitRevision(0, "r0:\n", "")
	require.NoError(t, err)

	_, err = store.ReadRevisionText(5)
	require.Error(t, err)
}
