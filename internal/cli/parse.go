package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/obslog"
)

// newParseCmd exercises the text codec directly, independent of any
// workspace: it reads a revision snapshot from a file (or stdin) and
// re-serializes it, round-tripping and validating the input.
func newParseCmd(_ *string, log *obslog.Log) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a revision snapshot and print it back out (validates and round-trips)",
		RunE: func(_ *cobra.Command, _ []string) error {
			text, err := readSnapshotInput(file)
			if err != nil {
				return err
			}
			rr, err := ebb.Parse(nil, text)
			if err != nil {
				return err
			}
			log.Print(ebb.Serialize(rr))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "snapshot file to read (default: stdin)")
	return cmd
}

func readSnapshotInput(file string) (string, error) {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(file)
	return string(data), err
}
