package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/obslog"
)

func newCopyCmd(root *string, log *obslog.Log) *cobra.Command {
	var fromBranchID, toBranchID string
	var fromRev int

	cmd := &cobra.Command{
		Use:   "copy <from-eid> <to-parent-eid> <name>",
		Short: "Copy a subtree, assigning fresh eids throughout (fails if it contains a mounted sub-branch)",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, err := openWorkspace(*root)
			if err != nil {
				return err
			}
			rr, err := ws.latest()
			if err != nil {
				return err
			}
			srcRev := rr
			if fromRev >= 0 {
				srcRev, err = ws.repos.RevisionRoot(fromRev)
				if err != nil {
					return err
				}
			}
			fromBranch, err := resolveBranch(srcRev, fromBranchID)
			if err != nil {
				return err
			}
			toBranch, err := resolveBranch(rr, toBranchID)
			if err != nil {
				return err
			}
			fromEID, err := parseEID(args[0])
			if err != nil {
				return err
			}
			toParentEID, err := parseEID(args[1])
			if err != nil {
				return err
			}

			fromElRev := &ebb.ElRevID{Branch: fromBranch, EID: fromEID, Rev: srcRev.Rev}
			newEID, err := ebb.CopySubtree(fromElRev, toBranch, toParentEID, args[2])
			if err != nil {
				return err
			}

			nextRev, err := ws.commitNext(rr, fmt.Sprintf("copy to e%d", newEID))
			if err != nil {
				return err
			}
			log.Info("copied to e%d, committed as revision %d", newEID, nextRev)
			return nil
		},
	}
	cmd.Flags().StringVar(&fromBranchID, "from-branch", "", "source branch instance id (default: root)")
	cmd.Flags().StringVar(&toBranchID, "to-branch", "", "destination branch instance id (default: root)")
	cmd.Flags().IntVar(&fromRev, "from-rev", -1, "source revision (default: latest)")
	return cmd
}
