package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/element"
)

// resolveBranch finds the branch instance within rr whose
// BranchInstanceID equals id (e.g. "^" or "^.5.12"). Defaults to the
// root branch when id is empty.
func resolveBranch(rr *ebb.RevisionRoot, id string) (*ebb.BranchInstance, error) {
	if id == "" || id == "^" {
		return rr.RootBranch, nil
	}
	for _, b := range rr.BranchInstances {
		if ebb.BranchInstanceID(b) == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no branch instance %q in revision %d", id, rr.Rev)
}

// parseEID parses a bare integer EID argument.
func parseEID(s string) (element.EID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return element.NoEID, fmt.Errorf("invalid eid %q: %w", s, err)
	}
	return element.EID(n), nil
}
