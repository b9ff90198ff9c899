package ebb

import (
	"github.com/ebbvc/ebb/internal/element"
	ebberrors "github.com/ebbvc/ebb/internal/errors"
)

// Repository is a sequence of revision roots indexed by revision number
// from 0.
type Repository struct {
	revRoots []*RevisionRoot
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// AppendRevisionRoot appends root as the next revision. Callers are
// responsible for giving it the correct Rev number (len(RevRoots) before
// the append).
func (r *Repository) AppendRevisionRoot(root *RevisionRoot) {
	r.revRoots = append(r.revRoots, root)
}

// RevisionCount returns the number of revisions recorded.
func (r *Repository) RevisionCount() int {
	return len(r.revRoots)
}

// RevisionRoot returns the revision root for rev, or ErrNoSuchRevision if
// rev is out of range.
func (r *Repository) RevisionRoot(rev int) (*RevisionRoot, error) {
	if rev < 0 || rev >= len(r.revRoots) {
		return nil, ebberrors.NewNoSuchRevisionError(rev, len(r.revRoots))
	}
	return r.revRoots[rev], nil
}

// ElRevID is an externally observable triple (branch, eid, rev) used to
// locate an element uniquely across the revision space.
type ElRevID struct {
	Branch *BranchInstance
	EID    element.EID
	Rev    int
}

// FindElRevByPath resolves a repository-root-relative path within a given
// revision to an ElRevID, descending into nested branches as needed
// (svn_branch_repos_find_el_rev_by_path_rev in the original). The EID is
// -1 if rrpath falls within a branch's tree but names no element there;
// the returned Branch is never nil for a valid revision, since every
// rrpath is at least within the revision's root branch.
func (r *Repository) FindElRevByPath(rrpath string, rev int) (*ElRevID, error) {
	rr, err := r.RevisionRoot(rev)
	if err != nil {
		return nil, err
	}
	branch, eid := FindNestedBranchElementByRRPath(rr.RootBranch, rrpath)
	invariant(branch != nil, "rrpath %q resolved to no branch at all", rrpath)
	return &ElRevID{Branch: branch, EID: eid, Rev: rev}, nil
}

// RevisionRoot holds one revision's EID allocator and the list of all
// branch instances (the root branch and every nested branch) that exist
// in that revision.
type RevisionRoot struct {
	Repos    *Repository
	Rev      int
	FirstEID element.EID
	NextEID  element.EID

	// RootBranch is the one BranchInstance with OuterBranch == nil.
	RootBranch *BranchInstance

	// BranchInstances lists every branch instance in this revision,
	// including RootBranch and all nested branches, in creation order.
	BranchInstances []*BranchInstance
}

// NewRevisionRoot creates a revision root with the given EID floor, owned
// by repos. It does not append itself to repos (see AppendRevisionRoot).
// The caller must still create and assign RootBranch (see
// NewTopLevelRevisionRoot or the text codec).
func NewRevisionRoot(repos *Repository, rev int, firstEID element.EID) *RevisionRoot {
	return &RevisionRoot{
		Repos:    repos,
		Rev:      rev,
		FirstEID: firstEID,
		NextEID:  firstEID,
	}
}

// AllocateNewEID returns the next unused EID for this revision root and
// advances the allocator. Allocations are never reused within a revision
// root.
func (rr *RevisionRoot) AllocateNewEID() element.EID {
	eid := rr.NextEID
	rr.NextEID++
	return eid
}

// NewTopLevelRevisionRoot creates a revision root together with its
// initial, empty top-level branch instance (rooted at a freshly allocated
// EID). This is the entry point for starting a brand new revision from
// scratch, as opposed to reconstituting one via Parse.
func NewTopLevelRevisionRoot(repos *Repository, rev int, firstEID element.EID) (*RevisionRoot, *BranchInstance) {
	rr := NewRevisionRoot(repos, rev, firstEID)
	rootEID := rr.AllocateNewEID()
	root := newBranchInstance(rootEID, rr, nil, element.NoEID)
	rr.RootBranch = root
	rr.BranchInstances = append(rr.BranchInstances, root)
	return rr, root
}

// eidIsAllocated reports whether eid falls within [FirstEID, NextEID),
// independent of whether any branch currently has a node for it.
func (rr *RevisionRoot) eidIsAllocated(eid element.EID) bool {
	return eid >= rr.FirstEID && eid < rr.NextEID
}
