package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/trufnetwork/notary/notary/internal/constants"
)

var privateKeyPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// PrivateKeyRule checks that a signing key is configured and is 32 bytes of hex.
type PrivateKeyRule struct{}

func (r *PrivateKeyRule) Name() string {
	return "private_key"
}

func (r *PrivateKeyRule) Validate(fields Fields) error {
	return ValidatePrivateKey(fields.PrivateKey)
}

// ValidatePrivateKey validates a hex encoded secp256k1 key, with or without 0x.
// The error never contains the key itself.
func ValidatePrivateKey(key string) error {
	key = NormalizePrivateKey(key)
	if key == "" {
		return errors.New(constants.ErrMsgEmptyRequired)
	}
	if len(key) != constants.PrivateKeyHexLength {
		return errors.New("private key must be exactly 64 hex characters")
	}
	if !privateKeyPattern.MatchString(key) {
		return errors.New(constants.ErrMsgInvalidPrivateKey)
	}
	return nil
}

// NormalizePrivateKey trims whitespace and the optional 0x prefix
func NormalizePrivateKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, constants.HexPrefix) || strings.HasPrefix(key, "0X") {
		key = key[len(constants.HexPrefix):]
	}
	return key
}
