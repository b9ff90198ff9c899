package ebb

import (
	"fmt"
	"strings"

	"github.com/ebbvc/ebb/internal/element"
)

func relpathJoin(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "/" + b
}

// relpathSkipAncestor reports whether parent is an ancestor of (or equal
// to) path, returning the remainder of path below parent. "" is an
// ancestor of everything.
func relpathSkipAncestor(parent, path string) (remainder string, ok bool) {
	if parent == "" {
		return path, true
	}
	if path == parent {
		return "", true
	}
	if strings.HasPrefix(path, parent+"/") {
		return path[len(parent)+1:], true
	}
	return "", false
}

// PathByEID walks ParentEID from eid toward RootEID, joining names with
// "/". It returns ("", false) if the parent chain is broken (eid is an
// orphan not reachable from the root). For RootEID it returns ("", true).
func PathByEID(b *BranchInstance, eid element.EID) (string, bool) {
	path := ""
	for !b.isRootEID(eid) {
		node, ok := b.Get(eid)
		if !ok {
			return "", false
		}
		path = relpathJoin(node.Name, path)
		eid = node.ParentEID
	}
	return path, true
}

// GetRootRRPath returns the repository-root-relative path of b's own root
// element: the empty string for a top-level branch, or the rrpath of its
// mount point in the outer branch otherwise.
func GetRootRRPath(b *BranchInstance) string {
	if b.OuterBranch == nil {
		return ""
	}
	rrpath, ok := RRPathByEID(b.OuterBranch, b.OuterEID)
	invariant(ok, "branch mount point e%d has no path in its outer branch", b.OuterEID)
	return rrpath
}

// RRPathByEID joins b's root rrpath with PathByEID(b, eid).
func RRPathByEID(b *BranchInstance, eid element.EID) (string, bool) {
	path, ok := PathByEID(b, eid)
	if !ok {
		return "", false
	}
	return relpathJoin(GetRootRRPath(b), path), true
}

// EIDByPath performs a linear search for the element whose PathByEID
// equals path, returning NoEID if none matches (elements with a broken
// parent chain are skipped, not matched).
func EIDByPath(b *BranchInstance, path string) element.EID {
	for _, eid := range b.eids() {
		p, ok := PathByEID(b, eid)
		if !ok {
			continue
		}
		if p == path {
			return eid
		}
	}
	return element.NoEID
}

// EIDByRRPath strips b's root rrpath from rrpath and delegates to
// EIDByPath, returning NoEID if rrpath is not inside b at all.
func EIDByRRPath(b *BranchInstance, rrpath string) element.EID {
	path, ok := relpathSkipAncestor(GetRootRRPath(b), rrpath)
	if !ok {
		return element.NoEID
	}
	return EIDByPath(b, path)
}

// GetAllSubBranches returns every branch instance directly nested in b
// (OuterBranch == b), in the revision root's BranchInstances order.
func GetAllSubBranches(b *BranchInstance) []*BranchInstance {
	var out []*BranchInstance
	for _, bi := range b.RevRoot.BranchInstances {
		if bi.OuterBranch == b {
			out = append(out, bi)
		}
	}
	return out
}

// GetSubbranches returns every branch nested in b whose mount point lies
// at or below eid's rrpath.
func GetSubbranches(b *BranchInstance, eid element.EID) []*BranchInstance {
	topRRPath, ok := RRPathByEID(b, eid)
	if !ok {
		return nil
	}
	var out []*BranchInstance
	for _, sub := range GetAllSubBranches(b) {
		subRoot := GetRootRRPath(sub)
		if _, ok := relpathSkipAncestor(topRRPath, subRoot); ok {
			out = append(out, sub)
		}
	}
	return out
}

// GetSubbranchAtEID returns the immediate sub-branch of b mounted exactly
// at eid, or nil if there is none.
func GetSubbranchAtEID(b *BranchInstance, eid element.EID) *BranchInstance {
	for _, sub := range GetAllSubBranches(b) {
		if sub.OuterEID == eid {
			return sub
		}
	}
	return nil
}

// FindNestedBranchElementByRRPath recursively descends from rootBranch
// into sub-branches whose root rrpath is an ancestor of rrpath, returning
// the innermost branch containing rrpath and the EID located there (or
// NoEID if rrpath is within that branch's tree but names no element).
// Returns a nil branch only if rrpath is not within rootBranch's tree at
// all.
func FindNestedBranchElementByRRPath(rootBranch *BranchInstance, rrpath string) (*BranchInstance, element.EID) {
	branchRootPath := GetRootRRPath(rootBranch)
	if _, ok := relpathSkipAncestor(branchRootPath, rrpath); !ok {
		return nil, element.NoEID
	}

	for _, sub := range GetAllSubBranches(rootBranch) {
		if b, eid := FindNestedBranchElementByRRPath(sub, rrpath); b != nil {
			return b, eid
		}
	}

	return rootBranch, EIDByRRPath(rootBranch, rrpath)
}

// BranchInstanceID returns the branch instance identifier string ("^" for
// a revision's root branch, "^.5.12" for a branch nested via outer EID 5
// then 12), derived by walking OuterBranch pointers upward. Two branch
// instances in the same revision root are semantically equal iff their
// IDs are equal.
func BranchInstanceID(b *BranchInstance) string {
	id := ""
	for b.OuterBranch != nil {
		id = fmt.Sprintf(".%d%s", b.OuterEID, id)
		b = b.OuterBranch
	}
	return "^" + id
}
