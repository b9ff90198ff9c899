package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/element"
)

func buildTree(t *testing.T) *ebb.BranchInstance {
	t.Helper()
	rr, root := ebb.NewTopLevelRevisionRoot(nil, 0, 0)

	dirEID := rr.AllocateNewEID()
	root.Update(dirEID, 0, "d", element.NewInline(element.KindDirectory))

	fileEID := rr.AllocateNewEID()
	root.Update(fileEID, dirEID, "f", element.NewInline(element.KindFile))

	_, err := ebb.Branch(root, fileEID, root, dirEID, "f2")
	require.NoError(t, err)

	return root
}

func TestFlatten_OrdersChildrenAlphabeticallyAndMarksSubbranches(t *testing.T) {
	root := buildTree(t)

	rows := flatten(root)
	// "d" at depth 0; under it, "f" (the original file) and "f2" (the new
	// subbranch mount point), both at depth 1.
	require.Len(t, rows, 3)

	require.Equal(t, "d", rows[0].name)
	require.Equal(t, 0, rows[0].depth)
	require.False(t, rows[0].isSubbranch)

	require.Equal(t, "f", rows[1].name)
	require.Equal(t, 1, rows[1].depth)
	require.False(t, rows[1].isSubbranch)

	require.Equal(t, "f2", rows[2].name)
	require.Equal(t, 1, rows[2].depth)
	require.True(t, rows[2].isSubbranch)
}

func TestFlatten_AlphabeticalOrderAmongSiblings(t *testing.T) {
	rr, root := ebb.NewTopLevelRevisionRoot(nil, 0, 0)
	bEID := rr.AllocateNewEID()
	root.Update(bEID, 0, "b", element.NewInline(element.KindFile))
	aEID := rr.AllocateNewEID()
	root.Update(aEID, 0, "a", element.NewInline(element.KindFile))

	rows := flatten(root)
	require.Len(t, rows, 2)
	require.Equal(t, "a", rows[0].name)
	require.Equal(t, "b", rows[1].name)
}

func TestRenderRows_HighlightsCursorAndMarksSubbranch(t *testing.T) {
	root := buildTree(t)
	rows := flatten(root)

	out := renderRows(rows, 1, true)
	require.True(t, strings.Contains(out, "f2/"))
	require.Equal(t, 3, strings.Count(out, "\n"))
}

func TestRenderStatic_ProducesOutput(t *testing.T) {
	root := buildTree(t)
	out := RenderStatic(root)
	require.NotEmpty(t, out)
}
