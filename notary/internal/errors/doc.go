// Package errors classifies error messages returned by an EVM JSON-RPC node.
//
// Node errors arrive as free-form strings, so classification is done with
// lower-cased substring patterns.
//
// Error Categories:
//
// 1. Connectivity Errors:
//   - The node is unreachable, the connection dropped, or the call timed out
//   - An open circuit breaker in front of the node
//     These abort the current notarization before anything is signed.
//
// 2. Submission Errors:
//   - The node answered and rejected the signed transaction
//     (nonce too low, insufficient funds, underpriced, ...)
//     These are reported with the node's own message. They are never retried,
//     since a retry needs a freshly resolved nonce.
//
// Usage:
//
//	if errors.IsConnectivityError(err) {
//	    return connectivityFailure(err)
//	}
//	reason := errors.SubmissionReason(err)
package errors
