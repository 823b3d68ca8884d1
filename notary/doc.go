// Package notary anchors document fingerprints on an EVM ledger.
//
// A notarization hashes the document with SHA-256, wraps the digest in the
// versioned evidence payload ("NOTARY_V1|" followed by the 32 digest bytes),
// and sends it as the data of a zero-value transaction from the configured
// account to itself. Nothing else is needed: the transaction is the evidence.
//
// Pipeline stages:
//  1. Derive the fingerprint and encode the payload (never fails)
//  2. Probe the node and read the chain id
//  3. Resolve nonce and gas price, and estimate gas, concurrently
//  4. Sign the fully populated draft
//  5. Broadcast once and report the node-assigned hash
//
// The pipeline returns as soon as the node accepts the transaction. It does
// not wait for inclusion and never resubmits.
//
// Key components:
//   - Notarizer: runs the pipeline and returns a Result
//   - Signer: derives the sender account from the key and signs drafts
//   - Verifier: recomputes a fingerprint and compares it with a transaction payload
package notary
