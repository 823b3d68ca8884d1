package notary

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/trufnetwork/notary/notary/internal/constants"
)

// Fingerprint is the SHA-256 digest of a document.
type Fingerprint [constants.FingerprintLength]byte

// DeriveFingerprint hashes the document bytes. Identical input always yields
// the identical fingerprint; empty input is valid.
func DeriveFingerprint(document []byte) Fingerprint {
	return Fingerprint(sha256.Sum256(document))
}

// Bytes returns a copy of the digest
func (f Fingerprint) Bytes() []byte {
	b := make([]byte, len(f))
	copy(b, f[:])
	return b
}

// Hex returns the digest as 0x + lowercase hex
func (f Fingerprint) Hex() string {
	return hexutil.Encode(f[:])
}

func (f Fingerprint) String() string {
	return f.Hex()
}

// IsZero reports whether the fingerprint is unset
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

// ParseFingerprint parses 64 hex characters, with or without 0x
func ParseFingerprint(s string) (Fingerprint, error) {
	var fp Fingerprint
	s = strings.TrimPrefix(strings.TrimSpace(s), constants.HexPrefix)
	if len(s) != 2*constants.FingerprintLength {
		return fp, fmt.Errorf("fingerprint must be %d hex characters, got %d", 2*constants.FingerprintLength, len(s))
	}
	b, err := hexutil.Decode(constants.HexPrefix + s)
	if err != nil {
		return fp, fmt.Errorf("invalid fingerprint: %w", err)
	}
	copy(fp[:], b)
	return fp, nil
}
