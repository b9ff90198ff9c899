// Package cli provides the ebb command-line interface: Cobra command
// definitions that wire the core internal/ebb model to a workspace's
// on-disk configuration, git-backed revision store, and the ambient
// logging/prompt/publish packages.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/obslog"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd(version string) *cobra.Command {
	var root string
	log := obslog.New()

	rootCmd := &cobra.Command{
		Use:     "ebb",
		Short:   "ebb tracks element moves and branches across a revision forest",
		Version: version,
		Long: `ebb is a command line tool for the element-based branching and
move-tracking model: a forest of branches, each a tree of elements
identified by stable EIDs, serialized to and from plain text.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&root, "root", ".", "workspace root directory")

	rootCmd.AddCommand(newInitCmd(&root, log))
	rootCmd.AddCommand(newShowCmd(&root, log))
	rootCmd.AddCommand(newViewCmd(&root, log))
	rootCmd.AddCommand(newAllocCmd(&root, log))
	rootCmd.AddCommand(newUpdateCmd(&root, log))
	rootCmd.AddCommand(newDeleteCmd(&root, log))
	rootCmd.AddCommand(newPurgeCmd(&root, log))
	rootCmd.AddCommand(newBranchCmd(&root, log))
	rootCmd.AddCommand(newBranchIntoCmd(&root, log))
	rootCmd.AddCommand(newCopyCmd(&root, log))
	rootCmd.AddCommand(newParseCmd(&root, log))
	rootCmd.AddCommand(newSerializeCmd(&root, log))
	rootCmd.AddCommand(newNewCmd(&root, log))
	rootCmd.AddCommand(newPublishCmd(&root, log))

	return rootCmd
}
