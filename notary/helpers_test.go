package notary

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/trufnetwork/notary/notary/config"
)

const (
	testKey    = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testTxHash = "0xabc123def4567890abc123def4567890abc123def4567890abc123def4567890"
	sepoliaID  = 11155111
)

func testConfig() *config.ProcessedConfig {
	return &config.ProcessedConfig{
		RPCURL:        "http://127.0.0.1:8545",
		PrivateKey:    testKey,
		ExplorerTxURL: "https://sepolia.etherscan.io/tx/",
		RPCTimeout:    time.Second,
	}
}

func testAddress(t *testing.T) common.Address {
	t.Helper()
	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	return crypto.PubkeyToAddress(key.PublicKey)
}

// mockNetwork is an in-memory node. Zero values answer successfully.
type mockNetwork struct {
	chainID     *big.Int
	chainErr    error
	nonce       uint64
	nonceErr    error
	gasPrice    *big.Int
	gasPriceErr error
	estimate    uint64
	estimateErr error
	sendHash    common.Hash
	sendErr     error
	hang        bool // block every call until its context ends

	mu           sync.Mutex
	calls        map[string]int
	sent         []*types.Transaction
	estimateMsgs []ethereum.CallMsg
}

func newMockNetwork() *mockNetwork {
	return &mockNetwork{
		chainID:  big.NewInt(sepoliaID),
		nonce:    5,
		gasPrice: big.NewInt(10),
		estimate: 22400,
		sendHash: common.HexToHash(testTxHash),
		calls:    make(map[string]int),
	}
}

func (m *mockNetwork) record(ctx context.Context, method string) error {
	m.mu.Lock()
	m.calls[method]++
	m.mu.Unlock()
	if m.hang {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (m *mockNetwork) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *mockNetwork) ChainID(ctx context.Context) (*big.Int, error) {
	if err := m.record(ctx, "chainId"); err != nil {
		return nil, err
	}
	return m.chainID, m.chainErr
}

func (m *mockNetwork) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	if err := m.record(ctx, "nonce"); err != nil {
		return 0, err
	}
	return m.nonce, m.nonceErr
}

func (m *mockNetwork) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if err := m.record(ctx, "gasPrice"); err != nil {
		return nil, err
	}
	return m.gasPrice, m.gasPriceErr
}

func (m *mockNetwork) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if err := m.record(ctx, "estimateGas"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	m.estimateMsgs = append(m.estimateMsgs, msg)
	m.mu.Unlock()
	return m.estimate, m.estimateErr
}

func (m *mockNetwork) SendRawTransaction(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	if err := m.record(ctx, "sendRawTransaction"); err != nil {
		return common.Hash{}, err
	}
	if m.sendErr != nil {
		return common.Hash{}, m.sendErr
	}
	m.mu.Lock()
	m.sent = append(m.sent, tx)
	m.mu.Unlock()
	return m.sendHash, nil
}

// failingNetwork fails the test on any call.
type failingNetwork struct {
	t *testing.T
}

func (f failingNetwork) ChainID(context.Context) (*big.Int, error) {
	f.t.Error("network must not be called")
	return nil, nil
}

func (f failingNetwork) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.t.Error("network must not be called")
	return 0, nil
}

func (f failingNetwork) SuggestGasPrice(context.Context) (*big.Int, error) {
	f.t.Error("network must not be called")
	return nil, nil
}

func (f failingNetwork) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	f.t.Error("network must not be called")
	return 0, nil
}

func (f failingNetwork) SendRawTransaction(context.Context, *types.Transaction) (common.Hash, error) {
	f.t.Error("network must not be called")
	return common.Hash{}, nil
}

// mockReader serves transactions for verification tests.
type mockReader struct {
	txs     map[common.Hash]*types.Transaction
	pending bool
	err     error
}

func (m *mockReader) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	tx, ok := m.txs[hash]
	if !ok {
		return nil, false, ethereum.NotFound
	}
	return tx, m.pending, nil
}
