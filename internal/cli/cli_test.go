package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ebbvc/ebb/internal/cli"
)

// run executes a freshly built root command with args against the --root
// dir, returning any error from RunE.
func run(t *testing.T, dir string, args ...string) error {
	t.Helper()
	cmd := cli.NewRootCmd("test")
	cmd.SetArgs(append([]string{"--root", dir}, args...))
	cmd.SilenceErrors = true
	return cmd.Execute()
}

func TestInit_CreatesWorkspaceAtRevisionZero(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, run(t, dir, "init"))
	require.Error(t, run(t, dir, "init"), "second init should fail")

	require.NoError(t, run(t, dir, "show"))
}

func TestUpdateBranchCopyDeletePurge_FullLifecycle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, dir, "init"))

	// Allocate e1 as a directory "d" under the implicit root (e0).
	require.NoError(t, run(t, dir, "update", "--alloc", "0", "d", "dir"))
	// e2: file "f" under "d" (e1).
	require.NoError(t, run(t, dir, "update", "--alloc", "1", "f", "file"))

	require.NoError(t, run(t, dir, "show", "--tree"))

	// Branch e2 ("f") into a new sub-branch mounted at e1 ("d") as "f2".
	require.NoError(t, run(t, dir, "branch", "2", "1", "f2"))

	// Copying a subtree that itself contains a subbranch mount must fail.
	require.Error(t, run(t, dir, "copy", "1", "0", "d-copy"))

	// Deleting a leaf element should succeed and be purgeable.
	require.NoError(t, run(t, dir, "delete", "2"))
	require.NoError(t, run(t, dir, "purge"))
}

func TestAlloc_PrintsNextEIDWithoutCommitting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, dir, "init"))

	require.NoError(t, run(t, dir, "alloc"))
	// alloc doesn't commit, so the next real allocation (via update
	// --alloc) still lands on the same eid alloc just reported: e1.
	require.NoError(t, run(t, dir, "update", "--alloc", "0", "d", "dir"))
}

func TestBranchInto_MovesSubtreeIntoExistingBranch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, dir, "init"))

	require.NoError(t, run(t, dir, "update", "--alloc", "0", "d1", "dir"))
	require.NoError(t, run(t, dir, "update", "--alloc", "0", "d2", "dir"))
	require.NoError(t, run(t, dir, "update", "--alloc", "1", "f", "file"))

	// Use branch-into to move e3 ("f", under d1 = e1) under d2 (e2),
	// preserving identity.
	require.NoError(t, run(t, dir, "branch-into", "3", "2", "f-moved"))
}

func TestSerialize_SucceedsOnBootstrapRevision(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, dir, "init"))
	require.NoError(t, run(t, dir, "serialize"))
}

func TestCommands_FailCleanlyWhenWorkspaceNotInitialized(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, run(t, dir, "show"))
	require.Error(t, run(t, dir, "update", "--alloc", "0", "d", "dir"))
}
