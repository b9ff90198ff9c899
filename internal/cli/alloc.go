package cli

import (
	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/obslog"
)

// newAllocCmd exposes RevisionRoot.AllocateNewEID standalone, the same
// allocator update.go's --alloc flag calls inline. It does not commit a
// revision: the EID space is per revision root, so the number it prints
// is only reserved once something (update --alloc, branch, copy, new)
// actually assigns it to an element and that assignment gets committed.
func newAllocCmd(root *string, log *obslog.Log) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc",
		Short: "Print the next eid the latest revision's allocator would hand out",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := openWorkspace(*root)
			if err != nil {
				return err
			}
			rr, err := ws.latest()
			if err != nil {
				return err
			}
			eid := rr.AllocateNewEID()
			log.Info("e%d", eid)
			return nil
		},
	}
	return cmd
}
