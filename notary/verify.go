package notary

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Verification is the outcome of checking a document against an evidence transaction.
type Verification struct {
	TxHash        common.Hash
	Sender        common.Address
	Recipient     common.Address
	OnChain       Fingerprint
	Expected      Fingerprint
	SelfAddressed bool
	Pending       bool // not yet included in a block; no finality implied either way
	Match         bool
}

// Verifier checks documents against evidence transactions already sent.
type Verifier struct {
	reader  TransactionReader
	timeout time.Duration
}

// NewVerifier creates a verifier. A zero timeout leaves calls unbounded
// except by the caller's context.
func NewVerifier(reader TransactionReader, timeout time.Duration) *Verifier {
	return &Verifier{reader: reader, timeout: timeout}
}

// VerifyTransaction fetches the transaction, decodes its payload and compares
// it with the fingerprint of document.
func (v *Verifier) VerifyTransaction(ctx context.Context, txHash common.Hash, document []byte) (*Verification, error) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	tx, pending, err := v.reader.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("fetch transaction %s: %w", txHash.Hex(), err)
	}

	onChain, err := DecodePayload(tx.Data())
	if err != nil {
		return nil, fmt.Errorf("transaction %s is not an evidence transaction: %w", txHash.Hex(), err)
	}

	sender, err := transactionSender(tx)
	if err != nil {
		return nil, fmt.Errorf("recover sender of %s: %w", txHash.Hex(), err)
	}

	var recipient common.Address
	if to := tx.To(); to != nil {
		recipient = *to
	}

	expected := DeriveFingerprint(document)
	return &Verification{
		TxHash:        txHash,
		Sender:        sender,
		Recipient:     recipient,
		OnChain:       onChain,
		Expected:      expected,
		SelfAddressed: sender == recipient,
		Pending:       pending,
		Match:         onChain == expected,
	}, nil
}

// VerifyPayload checks a raw data field against a document without any network access.
func VerifyPayload(data []byte, document []byte) (bool, Fingerprint, error) {
	onChain, err := DecodePayload(data)
	if err != nil {
		return false, Fingerprint{}, err
	}
	return onChain == DeriveFingerprint(document), onChain, nil
}

func transactionSender(tx *types.Transaction) (common.Address, error) {
	if !tx.Protected() {
		return types.Sender(types.HomesteadSigner{}, tx)
	}
	return types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
}
