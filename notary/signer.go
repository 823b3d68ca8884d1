package notary

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap/zapcore"

	"github.com/trufnetwork/notary/notary/internal/constants"
	"github.com/trufnetwork/notary/notary/validation"
)

// Signer holds the process's signing key and the account derived from it.
// The key is never printed, logged or returned in an error.
type Signer struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	keyHint    string
}

// NewSigner creates a Signer from a hex encoded secp256k1 key (0x optional).
func NewSigner(hexKey string) (*Signer, error) {
	key := validation.NormalizePrivateKey(hexKey)
	if err := validation.ValidatePrivateKey(key); err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}

	ecdsaKey, err := crypto.HexToECDSA(key)
	if err != nil {
		// err may echo key characters, do not wrap it
		return nil, fmt.Errorf("signing key: %s", constants.ErrMsgInvalidPrivateKey)
	}

	return &Signer{
		privateKey: ecdsaKey,
		address:    crypto.PubkeyToAddress(ecdsaKey.PublicKey),
		keyHint:    constants.HexPrefix + key[:constants.KeyHintLength] + "…",
	}, nil
}

// Address returns the sender account
func (s *Signer) Address() common.Address {
	return s.address
}

// KeyHint returns a short prefix confirming which key was loaded
func (s *Signer) KeyHint() string {
	return s.keyHint
}

// SignDraft signs a draft with EIP-155 replay protection for the draft's chain.
func (s *Signer) SignDraft(d *Draft) (*SignedTransaction, error) {
	if d == nil {
		return nil, fmt.Errorf("cannot sign nil draft")
	}
	if d.from != s.address {
		return nil, fmt.Errorf("draft sender %s does not match signer %s", d.from.Hex(), s.address.Hex())
	}

	tx, err := types.SignTx(d.unsigned(), types.LatestSignerForChainID(d.chainID), s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return &SignedTransaction{tx: tx, from: s.address}, nil
}

func (s *Signer) String() string {
	return fmt.Sprintf("signer(%s key=%s)", s.address.Hex(), s.keyHint)
}

// GoString keeps %#v from dumping the key
func (s *Signer) GoString() string {
	return s.String()
}

// MarshalLogObject lets the signer be used directly as a zap field.
func (s *Signer) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("address", s.address.Hex())
	enc.AddString("key_hint", s.keyHint)
	return nil
}
