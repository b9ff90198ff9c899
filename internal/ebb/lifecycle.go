package ebb

import (
	"github.com/ebbvc/ebb/internal/element"
	ebberrors "github.com/ebbvc/ebb/internal/errors"
)

// AddNewBranchInstance creates a new, empty branch instance nested in
// outerBranch at outerEID, and registers it in the revision root's
// BranchInstances list. The caller is responsible for outerBranch having
// (or soon having) a subbranch-root node at outerEID.
func AddNewBranchInstance(outerBranch *BranchInstance, outerEID, rootEID element.EID) *BranchInstance {
	b := newBranchInstance(rootEID, outerBranch.RevRoot, outerBranch, outerEID)
	b.RevRoot.BranchInstances = append(b.RevRoot.BranchInstances, b)
	return b
}

// BranchSubtree creates a new branch instance nested in toOuterBranch at
// toOuterEID, rooted at subtree.RootEID (identity preserved), and
// instantiates subtree into it.
func BranchSubtree(subtree *Subtree, toOuterBranch *BranchInstance, toOuterEID element.EID) (*BranchInstance, error) {
	newBranch := AddNewBranchInstance(toOuterBranch, toOuterEID, subtree.RootEID)
	if err := InstantiateSubtree(newBranch, element.NoEID, "", subtree); err != nil {
		return nil, err
	}
	return newBranch, nil
}

// Branch extracts the subtree rooted at fromEID in fromBranch, creates a
// subbranch-root element under (toOuterParentEID, newName) in
// toOuterBranch with a freshly allocated EID, and branches the subtree
// into a new nested BranchInstance mounted there. Fails with ErrBranching
// if fromEID has no current path in fromBranch (i.e. is not located:
// missing or orphaned).
func Branch(fromBranch *BranchInstance, fromEID element.EID, toOuterBranch *BranchInstance, toOuterParentEID element.EID, newName string) (*BranchInstance, error) {
	if _, ok := PathByEID(fromBranch, fromEID); !ok {
		return nil, ebberrors.NewBranchingError(BranchInstanceID(fromBranch), int(fromEID), "element does not exist")
	}

	// Capture before creating the new mount point: if fromEID is itself
	// an immediate subbranch mount of fromBranch, we must not recurse
	// into the new element we're about to add.
	fromSubtree := GetSubtree(fromBranch, fromEID)

	toOuterEID := toOuterBranch.RevRoot.AllocateNewEID()
	toOuterBranch.UpdateAsSubbranchRoot(toOuterEID, toOuterParentEID, newName)

	return BranchSubtree(fromSubtree, toOuterBranch, toOuterEID)
}

// BranchInto extracts the subtree rooted at fromEID in fromBranch and
// instantiates it into the existing toBranch (no new nested branch is
// created). Same precondition and failure mode as Branch.
func BranchInto(fromBranch *BranchInstance, fromEID element.EID, toBranch *BranchInstance, toParentEID element.EID, newName string) error {
	if _, ok := PathByEID(fromBranch, fromEID); !ok {
		return ebberrors.NewBranchingError(BranchInstanceID(fromBranch), int(fromEID), "element does not exist")
	}

	fromSubtree := GetSubtree(fromBranch, fromEID)
	return InstantiateSubtree(toBranch, toParentEID, newName, fromSubtree)
}

// CopySubtree copies the element located at fromElRev into toBranch under
// (toParentEID, toName), assigning fresh EIDs throughout. It is AddSubtree
// applied to the subtree extracted from fromElRev, and therefore inherits
// AddSubtree's ErrBranching restriction: the source subtree must not
// contain nested sub-branches.
func CopySubtree(fromElRev *ElRevID, toBranch *BranchInstance, toParentEID element.EID, toName string) (element.EID, error) {
	subtree := GetSubtree(fromElRev.Branch, fromElRev.EID)
	return AddSubtree(toBranch, element.NoEID, toParentEID, toName, subtree)
}

// DeleteBranchInstanceRecursive removes branch from its revision root's
// branch list, first recursively removing every sub-branch nested in it
// (post-order: children before the branch itself).
func DeleteBranchInstanceRecursive(branch *BranchInstance) {
	for _, sub := range GetAllSubBranches(branch) {
		DeleteBranchInstanceRecursive(sub)
	}
	removeBranchInstance(branch.RevRoot, branch)
}

func removeBranchInstance(rr *RevisionRoot, branch *BranchInstance) {
	invariant(branch.RevRoot == rr, "removeBranchInstance: branch does not belong to rr")
	for i, bi := range rr.BranchInstances {
		if bi == branch {
			rr.BranchInstances = append(rr.BranchInstances[:i], rr.BranchInstances[i+1:]...)
			return
		}
	}
}

// PurgeRecursive runs PurgeOrphans on branch, then recurses into each
// sub-branch whose mount-point element still exists in branch's map.
// Sub-branches whose mount point has been removed are deleted entirely
// (cascading to their own nested branches). This is a single operation
// per branch with well-defined post-order across sub-branches: the branch
// purges itself before inspecting children, and a deleted sub-branch's
// own descendants are removed before it is.
func PurgeRecursive(branch *BranchInstance) {
	branch.PurgeOrphans()

	for _, sub := range GetAllSubBranches(branch) {
		if _, ok := branch.Get(sub.OuterEID); ok {
			PurgeRecursive(sub)
		} else {
			DeleteBranchInstanceRecursive(sub)
		}
	}
}
