package app

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	textFlag  = "text"
	stdinPath = "-"
)

// readDocument returns the bytes to fingerprint: the --text flag, the named
// file, or stdin when no file (or "-") is given.
func readDocument(cmd *cobra.Command, args []string) ([]byte, error) {
	if cmd.Flags().Changed(textFlag) {
		if len(args) > 0 {
			return nil, errors.New("--text cannot be combined with a file argument")
		}
		text, err := cmd.Flags().GetString(textFlag)
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	}

	if len(args) == 0 || args[0] == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(err, "read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read document %s", args[0])
	}
	return data, nil
}
