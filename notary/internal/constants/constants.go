package constants

import "time"

// Wire format constants
const (
	// PayloadTag prefixes every evidence payload. Changing it is a new wire version.
	PayloadTag = "NOTARY_V1|"
	// FingerprintLength is the digest size in bytes
	FingerprintLength = 32
	// PayloadLength is the tag plus the fingerprint
	PayloadLength = len(PayloadTag) + FingerprintLength
	// HexPrefix is the prefix used for hex encoded data fields, keys and addresses
	HexPrefix = "0x"
)

// Gas and network defaults
const (
	// FallbackGasLimit is used whenever the node cannot estimate the transaction
	FallbackGasLimit uint64 = 50000
	// DefaultExplorerTxURL is the Sepolia etherscan transaction page prefix
	DefaultExplorerTxURL = "https://sepolia.etherscan.io/tx/"
	// DefaultRPCTimeout bounds every single network call
	DefaultRPCTimeout = 15 * time.Second
	// DefaultDialAttempts is the number of liveness probes made when dialing at startup
	DefaultDialAttempts = 3
	// DefaultWatchSchedule re-checks watched documents at the top of every hour
	DefaultWatchSchedule = "0 * * * *"
	// KeyHintLength is the number of hex characters of the signing key that may be shown
	KeyHintLength = 6
)

// Validation constants
const (
	// PrivateKeyHexLength is the expected length of a secp256k1 private key without prefix
	PrivateKeyHexLength = 64
)

// Error messages
const (
	ErrMsgEmptyRequired     = "required field cannot be empty"
	ErrMsgInvalidPrivateKey = "invalid private key format"
	ErrMsgInvalidEndpoint   = "invalid rpc endpoint"
	ErrMsgInvalidExplorer   = "invalid explorer url"
	ErrMsgInvalidSchedule   = "invalid cron schedule"
	ErrMsgInvalidMetrics    = "invalid metrics endpoint"
)
