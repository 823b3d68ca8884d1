package notary

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/trufnetwork/notary/notary/internal/constants"
)

var (
	// ErrPayloadLength is returned when data is not exactly tag + fingerprint long
	ErrPayloadLength = errors.New("evidence payload has wrong length")
	// ErrPayloadTag is returned when data does not start with the version tag
	ErrPayloadTag = errors.New("evidence payload has unknown tag")
)

// EvidencePayload is the tagged envelope placed in the transaction data field.
type EvidencePayload [constants.PayloadLength]byte

// EncodePayload prepends the version tag to the fingerprint.
func EncodePayload(fp Fingerprint) EvidencePayload {
	var p EvidencePayload
	n := copy(p[:], constants.PayloadTag)
	copy(p[n:], fp[:])
	return p
}

// Bytes returns a copy of the raw payload
func (p EvidencePayload) Bytes() []byte {
	b := make([]byte, len(p))
	copy(b, p[:])
	return b
}

// Hex returns the payload as it appears in a transaction data field: 0x + lowercase hex.
func (p EvidencePayload) Hex() string {
	return hexutil.Encode(p[:])
}

// Fingerprint returns the embedded fingerprint
func (p EvidencePayload) Fingerprint() Fingerprint {
	var fp Fingerprint
	copy(fp[:], p[len(constants.PayloadTag):])
	return fp
}

// DecodePayload checks tag and length and returns the embedded fingerprint.
func DecodePayload(data []byte) (Fingerprint, error) {
	if len(data) != constants.PayloadLength {
		return Fingerprint{}, fmt.Errorf("%w: want %d bytes, got %d", ErrPayloadLength, constants.PayloadLength, len(data))
	}
	if !bytes.HasPrefix(data, []byte(constants.PayloadTag)) {
		return Fingerprint{}, ErrPayloadTag
	}
	var fp Fingerprint
	copy(fp[:], data[len(constants.PayloadTag):])
	return fp, nil
}

// DecodePayloadHex decodes a 0x prefixed (or bare) hex data field.
func DecodePayloadHex(s string) (Fingerprint, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, constants.HexPrefix) || strings.HasPrefix(s, "0X") {
		s = s[len(constants.HexPrefix):]
	}
	data, err := hexutil.Decode(constants.HexPrefix + s)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("invalid payload hex: %w", err)
	}
	return DecodePayload(data)
}
