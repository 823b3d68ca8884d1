// Package chain connects the notary to an EVM JSON-RPC node with go-ethereum.
package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/trufnetwork/notary/notary/validation"
)

// Backend is everything the notary reads from or sends to a node.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendRawTransaction(ctx context.Context, tx *types.Transaction) (common.Hash, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
}

// DialOptions controls the startup connection.
type DialOptions struct {
	// Attempts is the number of liveness probes before giving up. Minimum 1.
	Attempts int
	// Timeout bounds every probe.
	Timeout time.Duration
	// InitialInterval is the first backoff delay between probes.
	InitialInterval time.Duration
	Logger          *zap.Logger
}

// Client is a Backend over go-ethereum's JSON-RPC client. The underlying
// connection is shared by every notarization and is safe for concurrent use.
type Client struct {
	rpc      *rpc.Client
	eth      *ethclient.Client
	endpoint string
}

var _ Backend = (*Client)(nil)

// Dial connects to the endpoint and probes it with eth_chainId until it
// answers or the attempts are used up. Probing only happens here, at startup.
func Dial(ctx context.Context, endpoint string, opts DialOptions) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	url, err := normalizeEndpoint(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "invalid rpc endpoint")
	}

	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", validation.RedactEndpoint(url))
	}
	c := NewClient(rpcClient, url)

	attempts := opts.Attempts
	if attempts < 1 {
		attempts = 1
	}
	bo := backoff.NewExponentialBackOff()
	if opts.InitialInterval > 0 {
		bo.InitialInterval = opts.InitialInterval
	}

	var chainID *big.Int
	probe := func() error {
		probeCtx, cancel := withTimeout(ctx, opts.Timeout)
		defer cancel()
		id, err := c.ChainID(probeCtx)
		if err != nil {
			logger.Warn("rpc liveness probe failed", zap.String("endpoint", validation.RedactEndpoint(url)), zap.Error(err))
			return err
		}
		chainID = id
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(attempts-1)), ctx)
	if err := backoff.Retry(probe, policy); err != nil {
		c.Close()
		return nil, errors.Wrapf(err, "rpc endpoint %s not responding", validation.RedactEndpoint(url))
	}

	logger.Info("connected to rpc endpoint",
		zap.String("endpoint", validation.RedactEndpoint(url)),
		zap.Stringer("chain_id", chainID))
	return c, nil
}

// NewClient wraps an existing rpc client without probing it.
func NewClient(rpcClient *rpc.Client, endpoint string) *Client {
	return &Client{
		rpc:      rpcClient,
		eth:      ethclient.NewClient(rpcClient),
		endpoint: endpoint,
	}
}

// Endpoint returns the endpoint without credentials or path
func (c *Client) Endpoint() string {
	return validation.RedactEndpoint(c.endpoint)
}

func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return c.eth.ChainID(ctx)
}

func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return c.eth.PendingNonceAt(ctx, account)
}

func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.eth.SuggestGasPrice(ctx)
}

func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return c.eth.EstimateGas(ctx, msg)
}

// SendRawTransaction calls eth_sendRawTransaction directly so the hash the
// node reports is returned, not one computed locally.
func (c *Client) SendRawTransaction(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "encode transaction")
	}
	var hash common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(raw)); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

func (c *Client) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	return c.eth.TransactionByHash(ctx, hash)
}

// Close releases the connection
func (c *Client) Close() {
	c.rpc.Close()
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
