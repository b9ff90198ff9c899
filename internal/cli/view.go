package cli

import (
	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/obslog"
	"github.com/ebbvc/ebb/internal/tui"
)

func newViewCmd(root *string, log *obslog.Log) *cobra.Command {
	var rev int
	var branchID string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a revision's tree interactively, stepping into sub-branches",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := openWorkspace(*root)
			if err != nil {
				return err
			}
			if rev < 0 {
				rev = ws.latestRev
			}
			rr, err := ws.repos.RevisionRoot(rev)
			if err != nil {
				return err
			}
			branch, err := resolveBranch(rr, branchID)
			if err != nil {
				return err
			}

			if !tui.IsTTY() {
				log.Print(tui.RenderStatic(branch))
				return nil
			}
			return tui.Run(branch)
		},
	}
	cmd.Flags().IntVar(&rev, "rev", -1, "revision to view (default: latest)")
	cmd.Flags().StringVar(&branchID, "branch", "", "branch instance id to start at (default: root)")
	return cmd
}
