package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trufnetwork/notary/notary"
)

func fingerprintCmd() *cobra.Command {
	var showPayload bool
	cmd := &cobra.Command{
		Use:   "fingerprint [file|-]",
		Short: "Print the SHA-256 fingerprint of a document without touching the network",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := readDocument(cmd, args)
			if err != nil {
				return err
			}
			fp := notary.DeriveFingerprint(document)
			fmt.Fprintln(cmd.OutOrStdout(), fp.Hex())
			if showPayload {
				fmt.Fprintln(cmd.OutOrStdout(), notary.EncodePayload(fp).Hex())
			}
			return nil
		},
	}
	cmd.Flags().String(textFlag, "", "fingerprint this text instead of a file")
	cmd.Flags().BoolVar(&showPayload, "payload", false, "also print the transaction data field")
	return cmd
}
