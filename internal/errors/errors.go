// Package errors provides sentinel errors and custom error types for the
// EBB model. Use errors.Is() and errors.As() to check for specific error
// types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the user-facing error kinds of the EBB model.
// Assertion-class invariant violations are not represented here: they
// panic with an *InvariantViolation (see Invariant) rather than returning
// an error value, since they indicate a programmer error rather than a
// recoverable condition.
var (
	// ErrBranching indicates a structural branching precondition failed:
	// the source element does not currently exist in its branch, or a
	// subtree carrying nested sub-branches was passed to an operation
	// that only re-identifies a flat element set.
	ErrBranching = errors.New("branching precondition failed")

	// ErrNoSuchRevision indicates a revision index outside the
	// repository's recorded range.
	ErrNoSuchRevision = errors.New("no such revision")

	// ErrParse indicates malformed input to the text codec: unexpected
	// EOF, a token count mismatch, or a missing separator.
	ErrParse = errors.New("malformed revision snapshot")
)

// BranchingError carries the branch and element that failed a branching
// precondition.
type BranchingError struct {
	BranchID string
	EID      int
	Reason   string
}

func (e *BranchingError) Error() string {
	return fmt.Sprintf("cannot branch from %s e%d: %s", e.BranchID, e.EID, e.Reason)
}

// Is returns true if the target error is ErrBranching.
func (e *BranchingError) Is(target error) bool {
	return target == ErrBranching
}

// NewBranchingError creates a new BranchingError.
func NewBranchingError(branchID string, eid int, reason string) *BranchingError {
	return &BranchingError{BranchID: branchID, EID: eid, Reason: reason}
}

// NoSuchRevisionError carries the offending revision number and the
// number of revisions actually recorded.
type NoSuchRevisionError struct {
	Rev       int
	Available int
}

func (e *NoSuchRevisionError) Error() string {
	return fmt.Sprintf("no such revision %d (repository has %d revision(s))", e.Rev, e.Available)
}

// Is returns true if the target error is ErrNoSuchRevision.
func (e *NoSuchRevisionError) Is(target error) bool {
	return target == ErrNoSuchRevision
}

// NewNoSuchRevisionError creates a new NoSuchRevisionError.
func NewNoSuchRevisionError(rev, available int) *NoSuchRevisionError {
	return &NoSuchRevisionError{Rev: rev, Available: available}
}

// ParseError carries the line number and content that failed to parse.
type ParseError struct {
	Line    int
	Content string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d (%q): %s", e.Line, e.Content, e.Reason)
}

// Is returns true if the target error is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a new ParseError.
func NewParseError(line int, content, reason string) *ParseError {
	return &ParseError{Line: line, Content: content, Reason: reason}
}

// InvariantViolation represents a failed internal assertion: an attempt to
// use an EID outside the allocated range, to update an element with null
// content through the content-bearing path, or to name a root element with
// a non-empty string (or a non-root element with an empty one). These are
// programmer errors, unreachable on well-formed inputs; Invariant panics
// with one rather than returning it, so it should never be handled by
// ordinary control flow.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Message
}

// Invariant panics with an *InvariantViolation if cond is false.
func Invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(&InvariantViolation{Message: fmt.Sprintf(format, args...)})
	}
}
