package notary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFingerprint(t *testing.T) {
	t.Run("known vectors", func(t *testing.T) {
		assert.Equal(t, "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", DeriveFingerprint(nil).Hex())
		assert.Equal(t, "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", DeriveFingerprint([]byte{}).Hex())
		assert.Equal(t, "0xba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", DeriveFingerprint([]byte("abc")).Hex())
	})

	t.Run("deterministic", func(t *testing.T) {
		doc := []byte("合同第一条：双方同意以下条款。")
		first := DeriveFingerprint(doc)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, DeriveFingerprint(append([]byte(nil), doc...)))
		}
	})

	t.Run("different documents differ", func(t *testing.T) {
		assert.NotEqual(t, DeriveFingerprint([]byte("contract v1")), DeriveFingerprint([]byte("contract v2")))
		assert.NotEqual(t, DeriveFingerprint([]byte("a")), DeriveFingerprint([]byte("a ")))
	})

	t.Run("bytes is a copy", func(t *testing.T) {
		fp := DeriveFingerprint([]byte("abc"))
		b := fp.Bytes()
		b[0] ^= 0xff
		assert.Equal(t, "0xba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", fp.Hex())
	})
}

func TestParseFingerprint(t *testing.T) {
	fp := DeriveFingerprint([]byte("abc"))

	parsed, err := ParseFingerprint(fp.Hex())
	require.NoError(t, err)
	assert.Equal(t, fp, parsed)

	parsed, err = ParseFingerprint(strings.TrimPrefix(fp.Hex(), "0x"))
	require.NoError(t, err)
	assert.Equal(t, fp, parsed)
	assert.Equal(t, fp.Hex(), fp.String())

	_, err = ParseFingerprint("abcd")
	assert.Error(t, err)

	_, err = ParseFingerprint("zz" + fp.Hex()[4:])
	assert.Error(t, err)

	assert.True(t, Fingerprint{}.IsZero())
	assert.False(t, fp.IsZero())
}
