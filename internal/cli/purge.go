package cli

import (
	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/obslog"
)

func newPurgeCmd(root *string, log *obslog.Log) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Recursively drop orphaned elements and sub-branches from the whole revision",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := openWorkspace(*root)
			if err != nil {
				return err
			}
			rr, err := ws.latest()
			if err != nil {
				return err
			}

			ebb.PurgeRecursive(rr.RootBranch)

			nextRev, err := ws.commitNext(rr, "purge")
			if err != nil {
				return err
			}
			log.Info("purged, committed as revision %d", nextRev)
			return nil
		},
	}
	return cmd
}
