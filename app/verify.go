package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trufnetwork/notary/notary"
	"github.com/trufnetwork/notary/notary/config"
	"github.com/trufnetwork/notary/notary/validation"
)

// ErrMismatch is returned when the transaction does not carry the document's fingerprint
var ErrMismatch = errors.New("fingerprint mismatch")

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <txhash> [file|-]",
		Short: "Check that a transaction carries the fingerprint of a document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := parseTxHash(args[0])
			if err != nil {
				return err
			}
			document, err := readDocument(cmd, args[1:])
			if err != nil {
				return err
			}

			log := logger()
			// verification reads only, no signing key needed
			loader := config.NewLoaderWithValidation(log, validation.NewRuleSet(
				&validation.RPCEndpointRule{},
				&validation.ExplorerURLRule{},
			))
			cfg, err := loader.Load(configPath(cmd))
			if err != nil {
				return err
			}

			rt, err := newRuntime(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer rt.Close()

			v, err := rt.verifier().VerifyTransaction(cmd.Context(), hash, document)
			if err != nil {
				return err
			}
			printVerification(cmd.OutOrStdout(), v, cfg.ExplorerTxURL)
			if !v.Match {
				return ErrMismatch
			}
			return nil
		},
	}
	cmd.Flags().String(textFlag, "", "verify this text instead of a file")
	return cmd
}

func parseTxHash(s string) (common.Hash, error) {
	b, err := hexutil.Decode("0x" + strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X"))
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, errors.Errorf("invalid transaction hash %q", s)
	}
	return common.BytesToHash(b), nil
}

func printVerification(w io.Writer, v *notary.Verification, explorer string) {
	status := "included"
	if v.Pending {
		status = "pending"
	}
	fmt.Fprintf(w, "transaction:   %s%s (%s)\n", explorer, v.TxHash.Hex(), status)
	fmt.Fprintf(w, "sender:        %s\n", v.Sender.Hex())
	fmt.Fprintf(w, "self-addressed: %t\n", v.SelfAddressed)
	fmt.Fprintf(w, "on chain:      %s\n", v.OnChain.Hex())
	fmt.Fprintf(w, "document:      %s\n", v.Expected.Hex())
	if v.Match {
		fmt.Fprintln(w, "result:        MATCH")
	} else {
		fmt.Fprintln(w, notary.ErrorPrefix+"fingerprint mismatch")
	}
}
