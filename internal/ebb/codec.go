package ebb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ebbvc/ebb/internal/element"
	ebberrors "github.com/ebbvc/ebb/internal/errors"
)

// DefaultBootstrapSnapshot is the canonical revision-0 text: a repository
// containing a single, empty root branch.
const DefaultBootstrapSnapshot = "r0:\n" +
	"family: eids 0 1 b-instances 1\n" +
	"b^ root-eid 0 at .\n" +
	"e0: normal -1 .\n"

// lineReader walks a \n-separated input one line at a time, tracking the
// 1-based line number for error messages.
type lineReader struct {
	lines []string
	pos   int
}

func newLineReader(input string) *lineReader {
	lines := strings.Split(input, "\n")
	// A well-formed snapshot ends with "\n"; strings.Split then yields a
	// trailing empty element that is never a real line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return &lineReader{lines: lines}
}

func (r *lineReader) next() (line string, lineNum int, err error) {
	if r.pos >= len(r.lines) {
		return "", r.pos + 1, ebberrors.NewParseError(r.pos+1, "", "unexpected end of input")
	}
	line = r.lines[r.pos]
	lineNum = r.pos + 1
	r.pos++
	return line, lineNum, nil
}

func parseRevisionLine(line string, lineNum int) (int, error) {
	if !strings.HasPrefix(line, "r") || !strings.HasSuffix(line, ":") {
		return 0, ebberrors.NewParseError(lineNum, line, "expected \"r<REV>:\"")
	}
	rev, err := strconv.Atoi(line[1 : len(line)-1])
	if err != nil {
		return 0, ebberrors.NewParseError(lineNum, line, "bad revision number: "+err.Error())
	}
	return rev, nil
}

func parseFamilyLine(line string, lineNum int) (first, next, numBranches int, err error) {
	n, scanErr := fmt.Sscanf(line, "family: eids %d %d b-instances %d", &first, &next, &numBranches)
	if scanErr != nil || n != 3 {
		return 0, 0, 0, ebberrors.NewParseError(lineNum, line, "expected \"family: eids <FIRST> <NEXT> b-instances <N>\"")
	}
	return first, next, numBranches, nil
}

func parseBranchLine(line string, lineNum int) (bid string, rootEID int, rrpath string, err error) {
	if !strings.HasPrefix(line, "b") {
		return "", 0, "", ebberrors.NewParseError(lineNum, line, "expected branch line starting with \"b\"")
	}
	rest := line[1:]
	const rootEIDSep = " root-eid "
	i := strings.Index(rest, rootEIDSep)
	if i < 0 {
		return "", 0, "", ebberrors.NewParseError(lineNum, line, "missing \" root-eid \"")
	}
	bid = rest[:i]
	rest = rest[i+len(rootEIDSep):]

	const atSep = " at "
	j := strings.Index(rest, atSep)
	if j < 0 {
		return "", 0, "", ebberrors.NewParseError(lineNum, line, "missing \" at \"")
	}
	rootEID, convErr := strconv.Atoi(rest[:j])
	if convErr != nil {
		return "", 0, "", ebberrors.NewParseError(lineNum, line, "bad root-eid: "+convErr.Error())
	}
	rrpath = rest[j+len(atSep):]
	if rrpath == "." {
		rrpath = ""
	}
	return bid, rootEID, rrpath, nil
}

func parseElementLine(line string, lineNum int) (eid int, kind string, parentEID int, name *string, err error) {
	if !strings.HasPrefix(line, "e") {
		return 0, "", 0, nil, ebberrors.NewParseError(lineNum, line, "expected element line starting with \"e\"")
	}
	rest := line[1:]
	const colonSep = ": "
	i := strings.Index(rest, colonSep)
	if i < 0 {
		return 0, "", 0, nil, ebberrors.NewParseError(lineNum, line, "missing \": \"")
	}
	eid, convErr := strconv.Atoi(rest[:i])
	if convErr != nil {
		return 0, "", 0, nil, ebberrors.NewParseError(lineNum, line, "bad eid: "+convErr.Error())
	}
	fields := strings.SplitN(rest[i+len(colonSep):], " ", 3)
	if len(fields) != 3 {
		return 0, "", 0, nil, ebberrors.NewParseError(lineNum, line, "expected \"<KIND> <PARENT_EID> <NAME>\"")
	}
	kind = fields[0]
	parentEID, convErr = strconv.Atoi(fields[1])
	if convErr != nil {
		return 0, "", 0, nil, ebberrors.NewParseError(lineNum, line, "bad parent eid: "+convErr.Error())
	}
	switch namePart := fields[2]; namePart {
	case "(null)":
		name = nil
	case ".":
		empty := ""
		name = &empty
	default:
		name = &namePart
	}
	return eid, kind, parentEID, name, nil
}

// elementSkeleton is the structural (parent, name, shape) information read
// for one element during the codec's first pass, before content
// references can be computed (they need every sibling's name to build a
// path).
type elementSkeleton struct {
	parent      element.EID
	name        string
	isSubbranch bool
}

func pathInSkeleton(m map[element.EID]elementSkeleton, rootEID, eid element.EID) (string, bool) {
	path := ""
	for eid != rootEID {
		sk, ok := m[eid]
		if !ok {
			return "", false
		}
		path = relpathJoin(sk.name, path)
		eid = sk.parent
	}
	return path, true
}

// Parse reads one revision-root snapshot (§4.7) from input and returns the
// reconstituted RevisionRoot, whose Repos field is set to repos (pass nil
// if the result will not be attached to a Repository); Parse does not
// append it to repos, that is left to the caller. Element content is
// deferred during the first pass over each branch's element lines; once
// a branch's structural skeleton is known, a second pass assigns
// Reference content {rev, relpath} to every "normal" element and leaves
// "subbranch" elements content-less.
func Parse(repos *Repository, input string) (*RevisionRoot, error) {
	r := newLineReader(input)

	revLine, ln, err := r.next()
	if err != nil {
		return nil, err
	}
	rev, err := parseRevisionLine(revLine, ln)
	if err != nil {
		return nil, err
	}

	familyLine, ln, err := r.next()
	if err != nil {
		return nil, err
	}
	first, next, numBranches, err := parseFamilyLine(familyLine, ln)
	if err != nil {
		return nil, err
	}

	rr := NewRevisionRoot(repos, rev, element.EID(first))
	rr.NextEID = element.EID(next)

	for j := 0; j < numBranches; j++ {
		branchLine, ln, err := r.next()
		if err != nil {
			return nil, err
		}
		_, rootEID, rrpath, err := parseBranchLine(branchLine, ln)
		if err != nil {
			return nil, err
		}

		var outerBranch *BranchInstance
		outerEID := element.NoEID
		if rrpath != "" {
			if rr.RootBranch == nil {
				return nil, ebberrors.NewParseError(ln, branchLine, "nested branch parsed before root branch")
			}
			outerBranch, outerEID = FindNestedBranchElementByRRPath(rr.RootBranch, rrpath)
			if outerBranch == nil {
				return nil, ebberrors.NewParseError(ln, branchLine, "branch root rrpath not found in outer branches")
			}
		}

		branch := newBranchInstance(element.EID(rootEID), rr, outerBranch, outerEID)
		rr.BranchInstances = append(rr.BranchInstances, branch)
		if outerBranch == nil {
			rr.RootBranch = branch
		}

		skeletons := make(map[element.EID]elementSkeleton)
		for eid := first; eid < next; eid++ {
			elLine, ln, err := r.next()
			if err != nil {
				return nil, err
			}
			parsedEID, kind, parentEID, name, err := parseElementLine(elLine, ln)
			if err != nil {
				return nil, err
			}
			if parsedEID != eid {
				return nil, ebberrors.NewParseError(ln, elLine, fmt.Sprintf("expected element line for e%d, got e%d", eid, parsedEID))
			}
			if name != nil {
				skeletons[element.EID(eid)] = elementSkeleton{
					parent:      element.EID(parentEID),
					name:        *name,
					isSubbranch: kind == "subbranch",
				}
			}
		}

		rootRRPath := GetRootRRPath(branch)
		for eid := first; eid < next; eid++ {
			sk, ok := skeletons[element.EID(eid)]
			if !ok {
				continue
			}
			if sk.isSubbranch {
				branch.UpdateAsSubbranchRoot(element.EID(eid), sk.parent, sk.name)
				continue
			}
			relpath, ok := pathInSkeleton(skeletons, element.EID(rootEID), element.EID(eid))
			if !ok {
				return nil, ebberrors.NewParseError(ln, "", fmt.Sprintf("e%d has a broken parent chain", eid))
			}
			content := element.NewReference(rev, relpathJoin(rootRRPath, relpath))
			branch.Update(element.EID(eid), sk.parent, sk.name, content)
		}
	}

	return rr, nil
}

// Serialize writes rr as a revision-root snapshot in the format of §4.7.
// It first runs PurgeOrphans on every branch, so the emitted multiset of
// elements always has intact parent chains.
func Serialize(rr *RevisionRoot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "r%d:\n", rr.Rev)
	fmt.Fprintf(&sb, "family: eids %d %d b-instances %d\n", rr.FirstEID, rr.NextEID, len(rr.BranchInstances))
	for _, b := range rr.BranchInstances {
		serializeBranch(&sb, b)
	}
	return sb.String()
}

func serializeBranch(sb *strings.Builder, b *BranchInstance) {
	rrpath := GetRootRRPath(b)
	display := rrpath
	if display == "" {
		display = "."
	}
	fmt.Fprintf(sb, "b%s root-eid %d at %s\n", BranchInstanceID(b), b.RootEID, display)

	b.PurgeOrphans()
	for eid := b.RevRoot.FirstEID; eid < b.RevRoot.NextEID; eid++ {
		node, ok := b.Get(eid)
		var parentEID element.EID
		var name, kind string
		if ok {
			parentEID = node.ParentEID
			name = node.Name
			if name == "" {
				name = "."
			}
			if node.Content != nil {
				kind = "normal"
			} else {
				kind = "subbranch"
			}
		} else {
			parentEID = element.NoEID
			name = "(null)"
			kind = "none"
		}
		fmt.Fprintf(sb, "e%d: %s %d %s\n", eid, kind, parentEID, name)
	}
}
