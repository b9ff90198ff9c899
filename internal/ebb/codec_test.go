package ebb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/element"
)

func TestParse_Bootstrap(t *testing.T) {
	rr, err := ebb.Parse(nil, ebb.DefaultBootstrapSnapshot)
	require.NoError(t, err)

	require.Equal(t, 0, rr.Rev)
	require.Equal(t, element.EID(0), rr.FirstEID)
	require.Equal(t, element.EID(1), rr.NextEID)
	require.Len(t, rr.BranchInstances, 1)

	root := rr.RootBranch
	require.NotNil(t, root)
	require.Equal(t, "^", ebb.BranchInstanceID(root))

	node, ok := root.Get(0)
	require.True(t, ok)
	require.Equal(t, "", node.Name)
	require.False(t, node.IsSubbranchRoot())
	rev, relpath := node.Content.Reference()
	require.Equal(t, 0, rev)
	require.Equal(t, "", relpath)
}

func TestSerialize_ParseOfDefault_IsExact(t *testing.T) {
	rr, err := ebb.Parse(nil, ebb.DefaultBootstrapSnapshot)
	require.NoError(t, err)

	require.Equal(t, ebb.DefaultBootstrapSnapshot, ebb.Serialize(rr))
}

func TestRoundTrip_AfterBranch(t *testing.T) {
	rr, err := ebb.Parse(nil, ebb.DefaultBootstrapSnapshot)
	require.NoError(t, err)

	root := rr.RootBranch
	dirEID := rr.AllocateNewEID()
	root.Update(dirEID, 0, "d", element.NewInline(element.KindDirectory))
	fileEID := rr.AllocateNewEID()
	root.Update(fileEID, dirEID, "f", element.NewInline(element.KindFile))

	_, err = ebb.Branch(root, dirEID, root, 0, "d2")
	require.NoError(t, err)

	text := ebb.Serialize(rr)
	rr2, err := ebb.Parse(nil, text)
	require.NoError(t, err)

	require.Equal(t, len(rr.BranchInstances), len(rr2.BranchInstances))
	for i, b1 := range rr.BranchInstances {
		b2 := rr2.BranchInstances[i]
		require.Equal(t, ebb.BranchInstanceID(b1), ebb.BranchInstanceID(b2))
		for eid := rr.FirstEID; eid < rr.NextEID; eid++ {
			n1, ok1 := b1.Get(eid)
			n2, ok2 := b2.Get(eid)
			require.Equal(t, ok1, ok2, "eid %d presence mismatch in branch %s", eid, ebb.BranchInstanceID(b1))
			if ok1 {
				require.Equal(t, n1.ParentEID, n2.ParentEID)
				require.Equal(t, n1.Name, n2.Name)
				require.Equal(t, n1.IsSubbranchRoot(), n2.IsSubbranchRoot())
			}
		}
	}
}

func TestParse_RejectsMalformedRevisionLine(t *testing.T) {
	_, err := ebb.Parse(nil, "not a revision line\n")
	require.Error(t, err)
}

func TestParse_RejectsTruncatedInput(t *testing.T) {
	_, err := ebb.Parse(nil, "r0:\n")
	require.Error(t, err)
}

func TestParse_RejectsEIDMismatch(t *testing.T) {
	bad := "r0:\n" +
		"family: eids 0 2 b-instances 1\n" +
		"b^ root-eid 0 at .\n" +
		"e0: normal -1 .\n" +
		"e5: none -1 (null)\n"
	_, err := ebb.Parse(nil, bad)
	require.Error(t, err)
}
