package errors

// Connectivity error patterns - the node could not be reached or did not answer in time
const (
	ErrPatternConnectionRefused = "connection refused"
	ErrPatternConnectionReset   = "connection reset"
	ErrPatternNoSuchHost        = "no such host"
	ErrPatternTimeout           = "i/o timeout"
	ErrPatternContextDeadline   = "context deadline exceeded"
	ErrPatternContextCanceled   = "context canceled"
	ErrPatternUnexpectedEOF     = "unexpected eof"
	ErrPatternNetworkUnreach    = "network is unreachable"
	ErrPatternBreakerOpen       = "circuit breaker is open"
	ErrPatternTooManyRequests   = "too many requests"
	ErrPatternBadGateway        = "502 bad gateway"
	ErrPatternServiceUnavail    = "503 service unavailable"
)

// Submission error patterns - the node rejected the transaction
const (
	ErrPatternNonceTooLow       = "nonce too low"
	ErrPatternNonceTooHigh      = "nonce too high"
	ErrPatternInsufficientFunds = "insufficient funds"
	ErrPatternUnderpriced       = "underpriced"
	ErrPatternAlreadyKnown      = "already known"
	ErrPatternIntrinsicGas      = "intrinsic gas too low"
	ErrPatternGasLimit          = "exceeds block gas limit"
	ErrPatternInvalidSender     = "invalid sender"
	ErrPatternTxTypeNotSupport  = "transaction type not supported"
	ErrPatternOversized         = "oversized data"
)

// ConnectivityErrorPatterns contains all patterns that indicate the node was not reachable
var ConnectivityErrorPatterns = []string{
	ErrPatternConnectionRefused,
	ErrPatternConnectionReset,
	ErrPatternNoSuchHost,
	ErrPatternTimeout,
	ErrPatternContextDeadline,
	ErrPatternContextCanceled,
	ErrPatternUnexpectedEOF,
	ErrPatternNetworkUnreach,
	ErrPatternBreakerOpen,
	ErrPatternTooManyRequests,
	ErrPatternBadGateway,
	ErrPatternServiceUnavail,
}

// SubmissionReasons maps rejection patterns to low cardinality reason labels
var SubmissionReasons = []struct {
	Pattern string
	Reason  string
}{
	{ErrPatternNonceTooLow, "nonce_too_low"},
	{ErrPatternNonceTooHigh, "nonce_too_high"},
	{ErrPatternInsufficientFunds, "insufficient_funds"},
	{ErrPatternUnderpriced, "underpriced"},
	{ErrPatternAlreadyKnown, "already_known"},
	{ErrPatternIntrinsicGas, "intrinsic_gas"},
	{ErrPatternGasLimit, "gas_limit"},
	{ErrPatternInvalidSender, "invalid_sender"},
	{ErrPatternTxTypeNotSupport, "tx_type"},
	{ErrPatternOversized, "oversized"},
}
