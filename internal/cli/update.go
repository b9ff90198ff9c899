package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/element"
	"github.com/ebbvc/ebb/internal/obslog"
)

func parseKind(s string) (element.Kind, error) {
	switch s {
	case "file":
		return element.KindFile, nil
	case "dir", "directory":
		return element.KindDirectory, nil
	case "symlink":
		return element.KindSymlink, nil
	default:
		return element.KindUnknown, fmt.Errorf("unknown kind %q (want file, dir, or symlink)", s)
	}
}

func newUpdateCmd(root *string, log *obslog.Log) *cobra.Command {
	var branchID string
	var alloc bool

	cmd := &cobra.Command{
		Use:   "update <eid> <parent-eid> <name> <kind>",
		Short: "Set or create an inline element: e<eid> under e<parent-eid> named <name>",
		Long: `Updates the element at <eid> in place, or creates it if <eid> is
allocated in the latest revision but has no element in the branch yet.
Pass --alloc to have ebb allocate a fresh EID instead of
naming one, in which case <eid> is omitted and the new EID is printed.`,
		Args: cobra.RangeArgs(3, 4),
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

			var eid element.EID
			var rest []string
			if alloc {
				eid = rr.AllocateNewEID()
				rest = args
			} else {
				eid, err = parseEID(args[0])
				if err != nil {
					return err
				}
				rest = args[1:]
			}
			if len(rest) != 3 {
				return fmt.Errorf("expected <parent-eid> <name> <kind>, got %d args", len(rest))
			}

			parentEID, err := parseEID(rest[0])
			if err != nil {
				return err
			}
			kind, err := parseKind(rest[2])
			if err != nil {
				return err
			}

			branch.Update(eid, parentEID, rest[1], element.NewInline(kind))

			nextRev, err := ws.commitNext(rr, fmt.Sprintf("update e%d", eid))
			if err != nil {
				return err
			}
			log.Info("e%d set, committed as revision %d", eid, nextRev)
			return nil
		},
	}
	cmd.Flags().StringVar(&branchID, "branch", "", "branch instance id to update (default: root)")
	cmd.Flags().BoolVar(&alloc, "alloc", false, "allocate a fresh eid instead of naming one")
	return cmd
}
