package notary

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Network is the subset of an EVM JSON-RPC node the pipeline needs.
// Implementations must be safe for concurrent use.
type Network interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	// SendRawTransaction submits the signed transaction and returns the hash
	// reported by the node.
	SendRawTransaction(ctx context.Context, tx *types.Transaction) (common.Hash, error)
}

// TransactionReader looks up transactions for verification.
type TransactionReader interface {
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
}
