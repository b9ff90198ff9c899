package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/obslog"
)

func newDeleteCmd(root *string, log *obslog.Log) *cobra.Command {
	var branchID string

	cmd := &cobra.Command{
		Use:   "delete <eid>",
		Short: "Remove an element, orphaning (and on the next purge, dropping) its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, err := openWorkspace(*root)
			if err != nil {
				return err
			}
			rr, err := ws.latest()
			if err != nil {
				return err
			}
			branch, err := resolveBranch(rr, branchID)
			if err != nil {
				return err
			}
			eid, err := parseEID(args[0])
			if err != nil {
				return err
			}

			branch.Delete(eid)

			nextRev, err := ws.commitNext(rr, fmt.Sprintf("delete e%d", eid))
			if err != nil {
				return err
			}
			log.Info("e%d deleted, committed as revision %d", eid, nextRev)
			return nil
		},
	}
	cmd.Flags().StringVar(&branchID, "branch", "", "branch instance id to delete from (default: root)")
	return cmd
}
