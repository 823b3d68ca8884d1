package notary

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrorPrefix starts every failure message returned by NotarizeText.
const ErrorPrefix = "ERROR: "

// Stage is the last pipeline state a notarization reached.
type Stage int

const (
	StageIdle Stage = iota
	StageHashComputed
	StagePayloadEncoded
	StageResolved // nonce, gas price and gas limit all known
	StageSigned
	StageBroadcast
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageHashComputed:
		return "hash_computed"
	case StagePayloadEncoded:
		return "payload_encoded"
	case StageResolved:
		return "resolved"
	case StageSigned:
		return "signed"
	case StageBroadcast:
		return "broadcast"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Status is the terminal state of a notarization.
type Status int

const (
	StatusFailed Status = iota
	StatusConfirmed // accepted by the node; not a finality guarantee
)

func (s Status) String() string {
	if s == StatusConfirmed {
		return "confirmed"
	}
	return "failed"
}

// Kind classifies why a notarization failed.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindConnectivity  Kind = "connectivity"
	KindSubmission    Kind = "submission"
	KindSigning       Kind = "signing"
)

// Failure describes a failed notarization. Reason is safe to show to users.
type Failure struct {
	Kind   Kind
	Stage  Stage
	Reason string
	Code   string // low cardinality label, e.g. insufficient_funds
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of one notarization call.
type Result struct {
	Status      Status
	Stage       Stage
	Fingerprint Fingerprint
	TxHash      common.Hash
	ExplorerURL string
	GasLimit    uint64
	Nonce       uint64
	Failure     *Failure
}

// OK reports whether the node accepted the transaction
func (r Result) OK() bool {
	return r.Status == StatusConfirmed
}

// String renders the result for a human: the explorer link on success, or an
// ERROR: prefixed message on failure.
func (r Result) String() string {
	if r.OK() {
		return fmt.Sprintf("notarized fingerprint %s, transaction: %s", r.Fingerprint.Hex(), r.ExplorerURL)
	}
	if r.Failure == nil {
		return ErrorPrefix + "notarization did not complete"
	}
	return ErrorPrefix + r.Failure.Error()
}
