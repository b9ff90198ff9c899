package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/obslog"
)

func newBranchIntoCmd(root *string, log *obslog.Log) *cobra.Command {
	var fromBranchID, toBranchID string

	cmd := &cobra.Command{
		Use:   "branch-into <from-eid> <to-parent-eid> <name>",
		Short: "Move a subtree into an existing branch, preserving element identity",
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
			fromBranch, err := resolveBranch(rr, fromBranchID)
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

			if err := ebb.BranchInto(fromBranch, fromEID, toBranch, toParentEID, args[2]); err != nil {
				return err
			}

			nextRev, err := ws.commitNext(rr, "branch-into")
			if err != nil {
				return err
			}
			log.Info("branched into %s as %q, committed as revision %d", ebb.BranchInstanceID(toBranch), args[2], nextRev)
			return nil
		},
	}
	cmd.Flags().StringVar(&fromBranchID, "from-branch", "", "source branch instance id (default: root)")
	cmd.Flags().StringVar(&toBranchID, "to-branch", "", "destination branch instance id (default: root)")
	return cmd
}
