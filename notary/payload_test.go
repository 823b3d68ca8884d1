package notary

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePayload(t *testing.T) {
	fp := DeriveFingerprint([]byte("abc"))
	payload := EncodePayload(fp)

	assert.Len(t, payload.Bytes(), 42)
	assert.Equal(t, "NOTARY_V1|", string(payload[:10]))
	assert.Equal(t, fp.Bytes(), payload.Bytes()[10:])
	assert.Equal(t, fp, payload.Fingerprint())

	// exact wire layout
	want := "0x" + hex.EncodeToString([]byte("NOTARY_V1|")) + "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	assert.Equal(t, want, payload.Hex())
	assert.True(t, strings.HasPrefix(payload.Hex(), "0x4e4f544152595f56317c"))
	assert.Len(t, payload.Hex(), 2+2*42)
}

func TestPayloadRoundTrip(t *testing.T) {
	docs := []string{"", "abc", "a longer legal document\nwith lines", "证据"}
	for _, doc := range docs {
		fp := DeriveFingerprint([]byte(doc))

		decoded, err := DecodePayloadHex(EncodePayload(fp).Hex())
		require.NoError(t, err)
		assert.Equal(t, fp, decoded, "document %q", doc)

		decoded, err = DecodePayload(EncodePayload(fp).Bytes())
		require.NoError(t, err)
		assert.Equal(t, fp, decoded)
	}
}

func TestDecodePayloadErrors(t *testing.T) {
	fp := DeriveFingerprint([]byte("abc"))
	valid := EncodePayload(fp).Bytes()

	_, err := DecodePayload(valid[:41])
	assert.ErrorIs(t, err, ErrPayloadLength)

	_, err = DecodePayload(append(valid, 0x00))
	assert.ErrorIs(t, err, ErrPayloadLength)

	wrongTag := append([]byte("NOTARY_V2|"), fp.Bytes()...)
	_, err = DecodePayload(wrongTag)
	assert.ErrorIs(t, err, ErrPayloadTag)

	_, err = DecodePayloadHex("0xnothex")
	assert.Error(t, err)

	_, err = DecodePayloadHex("0x")
	assert.ErrorIs(t, err, ErrPayloadLength)
}
