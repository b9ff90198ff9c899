package cli

import (
	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/obslog"
)

// newSerializeCmd is parse's workspace-aware counterpart: it serializes
// a committed revision straight from the store, with no tree formatting,
// so its output can be piped into "ebb parse" to round-trip a real
// revision rather than a hand-written snapshot.
func newSerializeCmd(root *string, log *obslog.Log) *cobra.Command {
	var rev int

	cmd := &cobra.Command{
		Use:   "serialize",
		Short: "Write a committed revision's snapshot text to stdout",
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
			log.Print(ebb.Serialize(rr))
			return nil
		},
	}
	cmd.Flags().IntVar(&rev, "rev", -1, "revision to serialize (default: latest)")
	return cmd
}
