package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trufnetwork/notary/notary/config"
)

func notarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notarize [file|-]",
		Short: "Anchor the fingerprint of a document on chain",
		Long: "Computes the SHA-256 fingerprint of the document and broadcasts a self-addressed " +
			"transaction carrying it. Prints the explorer link, or a line starting with ERROR: on failure.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := readDocument(cmd, args)
			if err != nil {
				return err
			}

			log := logger()
			cfg, err := config.NewLoader(log).Load(configPath(cmd))
			if err != nil {
				return err
			}

			rt, err := newRuntime(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer rt.Close()

			n, err := rt.notarizer()
			if err != nil {
				return err
			}

			res := n.Notarize(cmd.Context(), document)
			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			if !res.OK() {
				return res.Failure
			}
			return nil
		},
	}
	cmd.Flags().String(textFlag, "", "notarize this text instead of a file")
	return cmd
}
