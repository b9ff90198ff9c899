package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/element"
	"github.com/ebbvc/ebb/internal/obslog"
	"github.com/ebbvc/ebb/internal/prompt"
)

func newNewCmd(root *string, log *obslog.Log) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Interactively branch or copy an element into a new mount point",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := openWorkspace(*root)
			if err != nil {
				return err
			}
			rr, err := ws.latest()
			if err != nil {
				return err
			}
			rootBranch := rr.RootBranch

			namesAt := func(parentPath string) []string {
				parentEID := ebb.EIDByPath(rootBranch, parentPath)
				var names []string
				for e := rr.FirstEID; e < rr.NextEID; e++ {
					node, ok := rootBranch.Get(e)
					if ok && node.ParentEID == parentEID {
						names = append(names, node.Name)
					}
				}
				return names
			}

			answers, err := prompt.RunNewBranch(namesAt)
			if err != nil {
				return err
			}

			sourceEID := ebb.EIDByPath(rootBranch, answers.SourcePath)
			if sourceEID == element.NoEID {
				return fmt.Errorf("no element at path %q", answers.SourcePath)
			}
			parentEID := ebb.EIDByPath(rootBranch, answers.ParentPath)
			if parentEID == element.NoEID && answers.ParentPath != "" {
				return fmt.Errorf("no element at path %q", answers.ParentPath)
			}

			var message string
			if answers.Identity {
				newBranch, err := ebb.Branch(rootBranch, sourceEID, rootBranch, parentEID, answers.Name)
				if err != nil {
					return err
				}
				message = fmt.Sprintf("new %s", ebb.BranchInstanceID(newBranch))
			} else {
				fromElRev := &ebb.ElRevID{Branch: rootBranch, EID: sourceEID, Rev: rr.Rev}
				newEID, err := ebb.CopySubtree(fromElRev, rootBranch, parentEID, answers.Name)
				if err != nil {
					return err
				}
				message = fmt.Sprintf("new copy e%d", newEID)
			}

			nextRev, err := ws.commitNext(rr, message)
			if err != nil {
				return err
			}
			log.Info("committed as revision %d", nextRev)
			return nil
		},
	}
	return cmd
}
