// Package ebb implements the Element-Based Branching and Move-Tracking
// model: an in-memory representation of a repository revision as a forest
// of branches, each branch a tree of elements identified by stable element
// identifiers (EIDs).
//
// A Repository owns a sequence of RevisionRoots; each RevisionRoot owns an
// EID allocator and a list of BranchInstances; each BranchInstance owns a
// map from EID to element.Node. Subtree is a transient, detachable snapshot
// of part of a branch used to move or clone a region between branches.
//
// The package is single-threaded per Repository: no method synchronizes
// access, and callers sharing a Repository across goroutines must provide
// their own exclusion.
package ebb
