package config

import (
	"fmt"
	"time"

	"github.com/trufnetwork/notary/notary/validation"
)

// RawConfig is the configuration as read from the TOML file and the environment.
// Environment variables override file values.
type RawConfig struct {
	RPCURL                string `toml:"rpc_url" env:"WEB3_RPC_URL"`
	PrivateKey            string `toml:"private_key" env:"WALLET_PRIVATE_KEY"`
	ExplorerTxURL         string `toml:"explorer_tx_url,omitempty" env:"NOTARY_EXPLORER_TX_URL"`
	RPCTimeout            string `toml:"rpc_timeout,omitempty" env:"NOTARY_RPC_TIMEOUT"` // e.g. "15s"
	ExpectedChainID       uint64 `toml:"expected_chain_id,omitempty" env:"NOTARY_EXPECTED_CHAIN_ID"`
	DialAttempts          int    `toml:"dial_attempts,omitempty" env:"NOTARY_DIAL_ATTEMPTS"`
	DisableCircuitBreaker bool   `toml:"disable_circuit_breaker,omitempty" env:"NOTARY_DISABLE_CIRCUIT_BREAKER"`
	WatchSchedule         string `toml:"watch_schedule,omitempty" env:"NOTARY_WATCH_SCHEDULE"`     // 5-field cron
	MetricsEndpoint       string `toml:"metrics_endpoint,omitempty" env:"NOTARY_METRICS_ENDPOINT"` // OTLP/HTTP metrics URL
}

// ProcessedConfig is the final validated, immutable configuration.
// It is built once at startup and handed to the pipeline constructor.
type ProcessedConfig struct {
	RPCURL          string
	PrivateKey      string // normalized, without 0x
	ExplorerTxURL   string
	RPCTimeout      time.Duration
	ExpectedChainID uint64 // 0 accepts any chain
	DialAttempts    int
	CircuitBreaker  bool
	WatchSchedule   string
	MetricsEndpoint string // empty disables metric export
	Sources         []string // where values came from, for debugging
}

// String never includes the private key.
func (c ProcessedConfig) String() string {
	return fmt.Sprintf("rpc_url=%s explorer_tx_url=%s rpc_timeout=%s expected_chain_id=%d dial_attempts=%d circuit_breaker=%t watch_schedule=%q metrics_endpoint=%s private_key=%s",
		validation.RedactEndpoint(c.RPCURL), c.ExplorerTxURL, c.RPCTimeout, c.ExpectedChainID, c.DialAttempts, c.CircuitBreaker, c.WatchSchedule, validation.RedactEndpoint(c.MetricsEndpoint), redacted(c.PrivateKey))
}

// GoString keeps %#v from printing the key as well.
func (c ProcessedConfig) GoString() string {
	return "config.ProcessedConfig{" + c.String() + "}"
}

func redacted(key string) string {
	if key == "" {
		return "<unset>"
	}
	return "<redacted>"
}
