package ebb

import (
	"github.com/ebbvc/ebb/internal/element"
	ebberrors "github.com/ebbvc/ebb/internal/errors"
)

// Subtree is a transient, detachable snapshot of a region of a branch: a
// deep-copied element map together with, for every nested branch whose
// mount point lies within the snapshot, a recursively captured Subtree of
// that nested branch. It is not itself a BranchInstance; it exists only to
// be consumed by AddSubtree or InstantiateSubtree.
type Subtree struct {
	EMap    map[element.EID]element.Node
	RootEID element.EID
	// Subbranches maps the outer EID (within this subtree's own e_map)
	// of each nested mount point to the Subtree captured from that
	// nested branch.
	Subbranches map[element.EID]*Subtree
}

// GetSubtree captures the region of branch rooted at eid: a deep copy of
// the branch's whole element map as it is right now, with RootEID set to
// eid (elements outside eid's subtree are not walked by AddSubtree and are
// purged as orphans by InstantiateSubtree), plus a recursively captured
// Subtree for every sub-branch whose mount point lies within that region.
func GetSubtree(branch *BranchInstance, eid element.EID) *Subtree {
	st := &Subtree{
		EMap:        make(map[element.EID]element.Node, len(branch.eMap)),
		RootEID:     eid,
		Subbranches: make(map[element.EID]*Subtree),
	}
	for k, v := range branch.eMap {
		st.EMap[k] = v.Clone()
	}

	for _, sub := range GetSubbranches(branch, eid) {
		st.Subbranches[sub.OuterEID] = GetSubtree(sub, sub.RootEID)
	}
	return st
}

// purgeOrphansMap applies the same orphan-removal algorithm as
// BranchInstance.PurgeOrphans to a bare element map.
func purgeOrphansMap(m map[element.EID]element.Node, rootEID element.EID) {
	for {
		changed := false
		for eid, node := range m {
			if eid == rootEID {
				continue
			}
			if _, ok := m[node.ParentEID]; !ok {
				delete(m, eid)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// AddSubtree copies subtree into toBranch as new elements: every element,
// including the root, receives a freshly allocated EID (if toEID is
// element.NoEID, the root's EID is allocated too; otherwise the root is
// installed at toEID). Source EIDs are discarded entirely. Fails with
// ErrBranching if subtree carries any nested Subbranches, since
// re-identification of a nested branch's contents is not a "copy", it is
// a branch (see InstantiateSubtree).
func AddSubtree(toBranch *BranchInstance, toEID, newParentEID element.EID, newName string, subtree *Subtree) (element.EID, error) {
	if len(subtree.Subbranches) > 0 {
		return element.NoEID, ebberrors.NewBranchingError(BranchInstanceID(toBranch), int(toEID),
			"adding or copying a subtree containing sub-branches is not supported")
	}

	if toEID == element.NoEID {
		toEID = toBranch.RevRoot.AllocateNewEID()
	}

	rootNode, ok := subtree.EMap[subtree.RootEID]
	invariant(ok, "subtree root e%d missing from its own element map", subtree.RootEID)

	if rootNode.Content != nil {
		toBranch.Update(toEID, newParentEID, newName, *rootNode.Content)
	} else {
		toBranch.UpdateAsSubbranchRoot(toEID, newParentEID, newName)
	}

	for fromEID, fromNode := range subtree.EMap {
		if fromNode.ParentEID != subtree.RootEID {
			continue
		}
		child := &Subtree{
			EMap:        subtree.EMap,
			RootEID:     fromEID,
			Subbranches: map[element.EID]*Subtree{},
		}
		if _, err := AddSubtree(toBranch, element.NoEID, toEID, fromNode.Name, child); err != nil {
			return element.NoEID, err
		}
	}

	return toEID, nil
}

// InstantiateSubtree installs subtree into toBranch preserving every
// element's original EID: the intent is "this new branch contains the
// same elements under the same identities", not a copy. Orphans in the
// subtree's own map are purged first (this mutates subtree.EMap, which is
// safe: subtree is a transient, caller-owned value). Each entry in
// Subbranches becomes a freshly created nested BranchInstance mounted at
// the corresponding outer EID.
func InstantiateSubtree(toBranch *BranchInstance, newParentEID element.EID, newName string, subtree *Subtree) error {
	rootNode, ok := subtree.EMap[subtree.RootEID]
	invariant(ok, "subtree root e%d missing from its own element map", subtree.RootEID)

	if rootNode.Content != nil {
		toBranch.Update(subtree.RootEID, newParentEID, newName, *rootNode.Content)
	} else {
		toBranch.UpdateAsSubbranchRoot(subtree.RootEID, newParentEID, newName)
	}

	purgeOrphansMap(subtree.EMap, subtree.RootEID)
	for eid, node := range subtree.EMap {
		if eid == subtree.RootEID {
			continue
		}
		if node.Content != nil {
			toBranch.Update(eid, node.ParentEID, node.Name, *node.Content)
		} else {
			toBranch.UpdateAsSubbranchRoot(eid, node.ParentEID, node.Name)
		}
	}

	for outerEID, sub := range subtree.Subbranches {
		if _, err := BranchSubtree(sub, toBranch, outerEID); err != nil {
			return err
		}
	}
	return nil
}
