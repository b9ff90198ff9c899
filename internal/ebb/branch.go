package ebb

import (
	"github.com/ebbvc/ebb/internal/element"
)

// BranchInstance is a single branch: an element map plus a root EID and
// optional outer (parent-branch) linkage. Nested branches are themselves
// BranchInstances, distinguished only by having a non-nil OuterBranch.
type BranchInstance struct {
	RootEID element.EID
	RevRoot *RevisionRoot

	// OuterBranch is nil iff OuterEID == element.NoEID, i.e. this is the
	// revision's top-level branch.
	OuterBranch *BranchInstance
	// OuterEID is the EID in OuterBranch whose node mounts this branch.
	OuterEID element.EID

	eMap map[element.EID]element.Node
}

// newBranchInstance constructs a branch instance with an empty map and
// asserts its structural invariants.
func newBranchInstance(rootEID element.EID, revRoot *RevisionRoot, outerBranch *BranchInstance, outerEID element.EID) *BranchInstance {
	b := &BranchInstance{
		RootEID:     rootEID,
		RevRoot:     revRoot,
		OuterBranch: outerBranch,
		OuterEID:    outerEID,
		eMap:        make(map[element.EID]element.Node),
	}
	b.assertInvariants()
	return b
}

func (b *BranchInstance) assertInvariants() {
	invariant(b.RevRoot != nil, "branch instance has no revision root")
	if b.OuterBranch != nil {
		invariant(b.OuterEID != element.NoEID, "nested branch has OuterEID == NoEID")
		invariant(b.RevRoot.eidIsAllocated(b.OuterEID), "nested branch outer eid %d not allocated", b.OuterEID)
	} else {
		invariant(b.OuterEID == element.NoEID, "top-level branch has non-NoEID OuterEID")
	}
	invariant(b.eMap != nil, "branch instance has nil element map")
}

// eidIsAllocated reports whether eid is within this branch's revision
// root's allocated range (EID_IS_ALLOCATED in the original).
func (b *BranchInstance) eidIsAllocated(eid element.EID) bool {
	return b.RevRoot.eidIsAllocated(eid)
}

func (b *BranchInstance) isRootEID(eid element.EID) bool {
	return eid == b.RootEID
}

// validateNode checks the parent/name/content shape rules for eid's node,
// per spec §3's Element Node invariants.
func (b *BranchInstance) validateNode(eid element.EID, node element.Node) {
	if b.isRootEID(eid) {
		invariant(node.ParentEID == element.NoEID, "root element e%d has non-NoEID parent", eid)
		invariant(node.Name == "", "root element e%d has non-empty name %q", eid, node.Name)
	} else {
		invariant(node.ParentEID != eid, "element e%d is its own parent", eid)
		invariant(b.eidIsAllocated(node.ParentEID), "element e%d has unallocated parent %d", eid, node.ParentEID)
		invariant(node.Name != "", "non-root element e%d has empty name", eid)
	}
}

// Get returns the node for eid, or (zero, false) if absent. eid must be
// allocated in this branch's revision root.
func (b *BranchInstance) Get(eid element.EID) (element.Node, bool) {
	invariant(b.eidIsAllocated(eid), "Get: e%d is not allocated", eid)
	node, ok := b.eMap[eid]
	if ok {
		b.validateNode(eid, node)
	}
	return node, ok
}

// Update sets eid's node to regular, content-bearing data. content must be
// non-nil; for the root EID parentEID must be NoEID and name must be
// empty, and vice versa for every other EID.
func (b *BranchInstance) Update(eid, parentEID element.EID, name string, content element.Content) {
	invariant(b.eidIsAllocated(eid), "Update: e%d is not allocated", eid)
	node := element.Node{ParentEID: parentEID, Name: name, Content: &content}
	b.validateNode(eid, node)
	b.eMap[eid] = node
}

// UpdateAsSubbranchRoot sets eid's node to mark it as the mount point of a
// nested branch: same parent/name rules as Update, but with nil content.
// name must be non-empty: subbranch roots are never the revision root.
func (b *BranchInstance) UpdateAsSubbranchRoot(eid, parentEID element.EID, name string) {
	invariant(b.eidIsAllocated(eid), "UpdateAsSubbranchRoot: e%d is not allocated", eid)
	invariant(name != "", "UpdateAsSubbranchRoot: e%d given empty name", eid)
	node := element.Node{ParentEID: parentEID, Name: name, Content: nil}
	b.validateNode(eid, node)
	b.eMap[eid] = node
}

// Delete removes eid's node. A subsequent Get returns (zero, false).
func (b *BranchInstance) Delete(eid element.EID) {
	invariant(b.eidIsAllocated(eid), "Delete: e%d is not allocated", eid)
	delete(b.eMap, eid)
}

// PurgeOrphans iteratively removes every non-root node whose parent EID is
// not present in the map, until the map stops changing. After it returns,
// every remaining non-root node has a present ancestor chain terminating
// at RootEID.
func (b *BranchInstance) PurgeOrphans() {
	for {
		changed := false
		for eid, node := range b.eMap {
			if eid == b.RootEID {
				continue
			}
			if _, ok := b.eMap[node.ParentEID]; !ok {
				delete(b.eMap, eid)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// eids returns every EID currently present in the map, in no particular
// order. Used internally by path/subtree walks that must enumerate the
// map; callers needing deterministic order (e.g. the codec) iterate
// [FirstEID, NextEID) directly instead.
func (b *BranchInstance) eids() []element.EID {
	out := make([]element.EID, 0, len(b.eMap))
	for eid := range b.eMap {
		out = append(out, eid)
	}
	return out
}
