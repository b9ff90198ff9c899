package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/config"
	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/obslog"
	"github.com/ebbvc/ebb/internal/publish"
)

func newPublishCmd(root *string, log *obslog.Log) *cobra.Command {
	var rev int
	var public bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a revision's snapshot text as a GitHub Gist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled, err := config.GetGistPublishEnabled(*root)
			if err != nil {
				return err
			}
			if !enabled {
				return fmt.Errorf("gist publishing is disabled for this workspace; enable it in .ebb/config.json")
			}

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

			if !cmd.Flags().Changed("public") {
				public, err = config.GetGistPublic(*root)
				if err != nil {
					return err
				}
			}

			client, err := publish.NewClient(cmd.Context())
			if err != nil {
				return err
			}
			result, err := client.PublishSnapshot(cmd.Context(),
				fmt.Sprintf("revision-%d.ebb", rev),
				fmt.Sprintf("ebb revision %d", rev),
				ebb.Serialize(rr),
				public,
			)
			if err != nil {
				return err
			}
			log.Info("published revision %d: %s", rev, result.HTMLURL)
			return nil
		},
	}
	cmd.Flags().IntVar(&rev, "rev", -1, "revision to publish (default: latest)")
	cmd.Flags().BoolVar(&public, "public", false, "publish a public gist instead of a secret one")
	return cmd
}
