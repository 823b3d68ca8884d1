package notary

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notarizedTx(t *testing.T, document []byte) *types.Transaction {
	t.Helper()
	network := newMockNetwork()
	n := newTestNotarizer(t, network)
	res := n.Notarize(context.Background(), document)
	require.True(t, res.OK())
	require.Len(t, network.sent, 1)
	return network.sent[0]
}

func TestVerifyTransaction(t *testing.T) {
	doc := []byte("original agreement")
	tx := notarizedTx(t, doc)
	reader := &mockReader{txs: map[common.Hash]*types.Transaction{tx.Hash(): tx}}
	v := NewVerifier(reader, 0)

	t.Run("matching document", func(t *testing.T) {
		got, err := v.VerifyTransaction(context.Background(), tx.Hash(), doc)
		require.NoError(t, err)
		assert.True(t, got.Match)
		assert.True(t, got.SelfAddressed)
		assert.False(t, got.Pending)
		assert.Equal(t, testAddress(t), got.Sender)
		assert.Equal(t, DeriveFingerprint(doc), got.OnChain)
	})

	t.Run("tampered document", func(t *testing.T) {
		got, err := v.VerifyTransaction(context.Background(), tx.Hash(), []byte("original agreement."))
		require.NoError(t, err)
		assert.False(t, got.Match)
		assert.Equal(t, DeriveFingerprint(doc), got.OnChain)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := v.VerifyTransaction(context.Background(), common.HexToHash("0x01"), doc)
		assert.Error(t, err)
	})

	t.Run("pending", func(t *testing.T) {
		pendingReader := &mockReader{txs: reader.txs, pending: true}
		got, err := NewVerifier(pendingReader, 0).VerifyTransaction(context.Background(), tx.Hash(), doc)
		require.NoError(t, err)
		assert.True(t, got.Pending)
		assert.True(t, got.Match)
	})

	t.Run("reader error", func(t *testing.T) {
		_, err := NewVerifier(&mockReader{err: errors.New("boom")}, 0).VerifyTransaction(context.Background(), tx.Hash(), doc)
		assert.ErrorContains(t, err, "boom")
	})
}

func TestVerifyRejectsNonEvidenceTransaction(t *testing.T) {
	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	tx, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    1,
		GasPrice: big.NewInt(1),
		Gas:      21000,
		To:       &to,
		Value:    big.NewInt(1),
		Data:     []byte("hello"),
	}), types.LatestSignerForChainID(big.NewInt(sepoliaID)), key)
	require.NoError(t, err)

	reader := &mockReader{txs: map[common.Hash]*types.Transaction{tx.Hash(): tx}}
	_, err = NewVerifier(reader, 0).VerifyTransaction(context.Background(), tx.Hash(), []byte("hello"))
	assert.ErrorIs(t, err, ErrPayloadLength)
}

func TestVerifyPayload(t *testing.T) {
	doc := []byte("abc")
	data := EncodePayload(DeriveFingerprint(doc)).Bytes()

	ok, fp, err := VerifyPayload(data, doc)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, DeriveFingerprint(doc), fp)

	ok, _, err = VerifyPayload(data, []byte("abd"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = VerifyPayload([]byte("short"), doc)
	assert.Error(t, err)
}
