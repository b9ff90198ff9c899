package ebb_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/element"
	ebberrors "github.com/ebbvc/ebb/internal/errors"
)

// newTestRevisionRoot builds a bare revision root with a single, empty
// root branch, the way the bootstrap snapshot does but without going
// through the codec.
func newTestRevisionRoot(t *testing.T) (*ebb.RevisionRoot, *ebb.BranchInstance) {
	t.Helper()
	repos := ebb.NewRepository()
	rr, root := ebb.NewTopLevelRevisionRoot(repos, 0, 0)
	repos.AppendRevisionRoot(rr)
	root.Update(root.RootEID, element.NoEID, "", element.NewInline(element.KindDirectory))
	return rr, root
}

func TestAllocateAndAdd(t *testing.T) {
	rr, root := newTestRevisionRoot(t)

	a := rr.AllocateNewEID()
	require.Equal(t, element.EID(1), a)
	root.Update(a, 0, "a", element.NewInline(element.KindFile))

	path, ok := ebb.PathByEID(root, a)
	require.True(t, ok)
	require.Equal(t, "a", path)

	require.Equal(t, a, ebb.EIDByPath(root, "a"))
	require.Equal(t, element.NoEID, ebb.EIDByPath(root, "b"))
}

func TestOrphanPurge(t *testing.T) {
	rr, root := newTestRevisionRoot(t)

	e1 := rr.AllocateNewEID()
	root.Update(e1, 0, "d", element.NewInline(element.KindDirectory))
	e2 := rr.AllocateNewEID()
	root.Update(e2, e1, "f", element.NewInline(element.KindFile))

	root.Delete(e1)
	root.PurgeOrphans()

	_, ok := root.Get(e2)
	require.False(t, ok)
	_, ok = root.Get(0)
	require.True(t, ok)
}

func TestPurgeOrphans_Idempotent(t *testing.T) {
	_, root := newTestRevisionRoot(t)
	root.PurgeOrphans()
	root.PurgeOrphans()
	_, ok := root.Get(0)
	require.True(t, ok)
}

func setupDirWithFile(t *testing.T) (*ebb.RevisionRoot, *ebb.BranchInstance, element.EID, element.EID) {
	t.Helper()
	rr, root := newTestRevisionRoot(t)
	dirEID := rr.AllocateNewEID()
	root.Update(dirEID, 0, "d", element.NewInline(element.KindDirectory))
	fileEID := rr.AllocateNewEID()
	root.Update(fileEID, dirEID, "f", element.NewInline(element.KindFile))
	return rr, root, dirEID, fileEID
}

func TestBranchSubtree(t *testing.T) {
	_, root, dirEID, _ := setupDirWithFile(t)

	newBranch, err := ebb.Branch(root, dirEID, root, 0, "d2")
	require.NoError(t, err)

	mountEID := newBranch.OuterEID
	node, ok := root.Get(mountEID)
	require.True(t, ok)
	require.True(t, node.IsSubbranchRoot())
	require.Equal(t, "d2", node.Name)

	require.Equal(t, "^."+strconv.Itoa(int(mountEID)), ebb.BranchInstanceID(newBranch))

	rootPath, ok := ebb.PathByEID(newBranch, newBranch.RootEID)
	require.True(t, ok)
	require.Equal(t, "", rootPath)

	var childEID element.EID
	found := false
	for eid := newBranch.RevRoot.FirstEID; eid < newBranch.RevRoot.NextEID; eid++ {
		if n, ok := newBranch.Get(eid); ok && n.Name == "f" {
			childEID = eid
			found = true
		}
	}
	require.True(t, found)
	childPath, ok := ebb.PathByEID(newBranch, childEID)
	require.True(t, ok)
	require.Equal(t, "f", childPath)
}

func TestBranch_FailsWhenSourceMissing(t *testing.T) {
	rr, root := newTestRevisionRoot(t)
	missing := rr.AllocateNewEID() // allocated, but never given a node
	_, err := ebb.Branch(root, missing, root, 0, "x")
	require.ErrorIs(t, err, ebberrors.ErrBranching)
}

func TestCopySubtree_FreshEIDs(t *testing.T) {
	rr, root, dirEID, fileEID := setupDirWithFile(t)

	fromElRev := &ebb.ElRevID{Branch: root, EID: dirEID, Rev: 0}
	newEID, err := ebb.CopySubtree(fromElRev, root, 0, "d2")
	require.NoError(t, err)
	require.NotEqual(t, dirEID, newEID)

	copyPath, ok := ebb.PathByEID(root, newEID)
	require.True(t, ok)
	require.Equal(t, "d2", copyPath)

	var copyChildEID element.EID
	for eid := rr.FirstEID; eid < rr.NextEID; eid++ {
		if n, ok := root.Get(eid); ok && n.Name == "f" && n.ParentEID == newEID {
			copyChildEID = eid
		}
	}
	require.NotZero(t, copyChildEID)
	childPath, ok := ebb.PathByEID(root, copyChildEID)
	require.True(t, ok)
	require.Equal(t, "d2/f", childPath)

	// Originals are untouched.
	origPath, ok := ebb.PathByEID(root, dirEID)
	require.True(t, ok)
	require.Equal(t, "d", origPath)
	origChildPath, ok := ebb.PathByEID(root, fileEID)
	require.True(t, ok)
	require.Equal(t, "d/f", origChildPath)
}

func TestAddSubtree_RejectsNestedSubbranches(t *testing.T) {
	_, root, dirEID, fileEID := setupDirWithFile(t)

	// Branch the file into a new subbranch mounted *inside* "d", so that
	// d's own subtree now contains a subbranch mount point.
	_, err := ebb.Branch(root, fileEID, root, dirEID, "f2")
	require.NoError(t, err)

	subtree := ebb.GetSubtree(root, dirEID)
	require.NotEmpty(t, subtree.Subbranches)

	fromElRev := &ebb.ElRevID{Branch: root, EID: dirEID, Rev: 0}
	_, err = ebb.CopySubtree(fromElRev, root, 0, "d3")
	require.Error(t, err)
	require.ErrorIs(t, err, ebberrors.ErrBranching)
}

func TestBranchInto(t *testing.T) {
	_, root, dirEID, _ := setupDirWithFile(t)

	err := ebb.BranchInto(root, dirEID, root, 0, "d2")
	require.NoError(t, err)

	path, ok := ebb.PathByEID(root, dirEID)
	require.True(t, ok)
	require.Equal(t, "d2", path)
}

func TestDeleteBranchInstanceRecursive(t *testing.T) {
	_, root, dirEID, _ := setupDirWithFile(t)
	newBranch, err := ebb.Branch(root, dirEID, root, 0, "d2")
	require.NoError(t, err)

	before := len(newBranch.RevRoot.BranchInstances)
	ebb.DeleteBranchInstanceRecursive(newBranch)
	require.Len(t, newBranch.RevRoot.BranchInstances, before-1)
}

func TestPurgeRecursive_DeletesOrphanedSubbranch(t *testing.T) {
	_, root, dirEID, _ := setupDirWithFile(t)
	newBranch, err := ebb.Branch(root, dirEID, root, 0, "d2")
	require.NoError(t, err)

	root.Delete(newBranch.OuterEID)
	ebb.PurgeRecursive(root)

	for _, b := range root.RevRoot.BranchInstances {
		require.NotSame(t, newBranch, b)
	}
}

