package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trufnetwork/notary/notary"
	"github.com/trufnetwork/notary/notary/config"
	"github.com/trufnetwork/notary/notary/validation"
)

func addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the account derived from the configured signing key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoaderWithValidation(logger(), validation.NewRuleSet(&validation.PrivateKeyRule{}))
			cfg, err := loader.Load(configPath(cmd))
			if err != nil {
				return err
			}
			signer, err := notary.NewSigner(cfg.PrivateKey)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (key %s)\n", signer.Address().Hex(), signer.KeyHint())
			return nil
		},
	}
}
