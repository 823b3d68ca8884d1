// Package app holds the notaryd command tree.
package app

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	notaryVersion "github.com/trufnetwork/notary/cmd/version"
)

const configFlag = "config"

// RootCmd creates the notaryd root command with every sub-command attached
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notaryd",
		Short: "Anchor document fingerprints on an EVM chain",
		Long: "notaryd hashes a document with SHA-256 and records the fingerprint in the data field " +
			"of a zero-value, self-addressed transaction. Configuration comes from an optional TOML " +
			"file overlaid by WEB3_RPC_URL, WALLET_PRIVATE_KEY and the NOTARY_* environment variables.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().String(configFlag, "", "path to a TOML configuration file")

	cmd.AddCommand(
		notarizeCmd(),
		verifyCmd(),
		fingerprintCmd(),
		addressCmd(),
		watchCmd(),
		notaryVersion.NewVersionCmd(),
	)
	return cmd
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString(configFlag)
	return path
}

func logger() *zap.Logger {
	return zap.L().Named("notary")
}
