package cli

import (
	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/obslog"
	"github.com/ebbvc/ebb/internal/tui"
)

func newShowCmd(root *string, log *obslog.Log) *cobra.Command {
	var rev int
	var branchID string
	var tree bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a revision's snapshot text, or its tree with --tree",
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

			if !tree {
				log.Print(ebb.Serialize(rr))
				return nil
			}

			branch, err := resolveBranch(rr, branchID)
			if err != nil {
				return err
			}
			log.Print(tui.RenderStatic(branch))
			return nil
		},
	}
	cmd.Flags().IntVar(&rev, "rev", -1, "revision to show (default: latest)")
	cmd.Flags().StringVar(&branchID, "branch", "", "branch instance id, e.g. \"^\" or \"^.5\" (default: root)")
	cmd.Flags().BoolVar(&tree, "tree", false, "render as an indented tree instead of snapshot text")
	return cmd
}
