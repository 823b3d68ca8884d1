package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	rpcerrors "github.com/trufnetwork/notary/notary/internal/errors"
	"github.com/trufnetwork/notary/notary/metrics"
)

// Circuit breaker configuration constants
const (
	DefaultCircuitBreakerMaxRequests  = 3
	DefaultCircuitBreakerInterval     = 30 * time.Second
	DefaultCircuitBreakerTimeout      = 60 * time.Second
	DefaultCircuitBreakerFailureRatio = 0.6
)

// BreakerBackend guards a Backend with a circuit breaker. Only connectivity
// failures count against the node: a rejected transaction or a failed gas
// estimate means the node is up.
type BreakerBackend struct {
	backend Backend
	cb      *gobreaker.CircuitBreaker
}

var _ Backend = (*BreakerBackend)(nil)

// NewCircuitBreaker wraps backend. While the breaker is open every call fails
// immediately with gobreaker.ErrOpenState.
func NewCircuitBreaker(backend Backend, name string, logger *zap.Logger, recorder metrics.MetricsRecorder) *BreakerBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = metrics.NewNoOpMetrics()
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: DefaultCircuitBreakerMaxRequests,
		Interval:    DefaultCircuitBreakerInterval,
		Timeout:     DefaultCircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= DefaultCircuitBreakerMaxRequests && failureRatio >= DefaultCircuitBreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !rpcerrors.IsConnectivityError(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			recorder.RecordCircuitBreakerStateChange(context.Background(), name, from, to)
		},
	})

	return &BreakerBackend{backend: backend, cb: cb}
}

// State returns the current breaker state
func (b *BreakerBackend) State() gobreaker.State {
	return b.cb.State()
}

func execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	v, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (b *BreakerBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return execute(b.cb, func() (*big.Int, error) { return b.backend.ChainID(ctx) })
}

func (b *BreakerBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return execute(b.cb, func() (uint64, error) { return b.backend.PendingNonceAt(ctx, account) })
}

func (b *BreakerBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return execute(b.cb, func() (*big.Int, error) { return b.backend.SuggestGasPrice(ctx) })
}

func (b *BreakerBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return execute(b.cb, func() (uint64, error) { return b.backend.EstimateGas(ctx, msg) })
}

func (b *BreakerBackend) SendRawTransaction(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	return execute(b.cb, func() (common.Hash, error) { return b.backend.SendRawTransaction(ctx, tx) })
}

type txLookup struct {
	tx      *types.Transaction
	pending bool
}

func (b *BreakerBackend) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	res, err := execute(b.cb, func() (txLookup, error) {
		tx, pending, err := b.backend.TransactionByHash(ctx, hash)
		return txLookup{tx: tx, pending: pending}, err
	})
	return res.tx, res.pending, err
}
