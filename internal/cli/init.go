package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/config"
	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/gitstore"
	"github.com/ebbvc/ebb/internal/obslog"
)

func newInitCmd(root *string, log *obslog.Log) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new workspace with a single, empty revision 0",
		RunE: func(_ *cobra.Command, _ []string) error {
			if config.IsInitialized(*root) {
				return fmt.Errorf("workspace %q is already initialized", *root)
			}
			if err := config.Init(*root); err != nil {
				return err
			}
			snapshotDir, err := config.GetSnapshotDir(*root)
			if err != nil {
				return err
			}
			store, err := gitstore.Init(snapshotDirPath(*root, snapshotDir))
			if err != nil {
				return err
			}
			if _, err := store.CommitRevision(0, ebb.DefaultBootstrapSnapshot, "bootstrap"); err != nil {
				return err
			}
			log.Info("initialized workspace at %s (revision 0)", *root)
			return nil
		},
	}
	return cmd
}
