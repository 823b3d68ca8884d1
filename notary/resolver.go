package notary

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/trufnetwork/notary/notary/internal/constants"
)

// GasEstimate is the gas limit used for a draft. Fallback is set when the
// node could not estimate and the fixed limit was used instead.
type GasEstimate struct {
	Limit    uint64
	Fallback bool
	Err      error
}

// resolveFees reads the pending nonce and the current gas price. Any failure
// aborts the call before signing.
func (n *Notarizer) resolveFees(ctx context.Context, from common.Address) (FeeQuote, error) {
	nonceCtx, cancel := n.withTimeout(ctx)
	nonce, err := n.network.PendingNonceAt(nonceCtx, from)
	cancel()
	if err != nil {
		return FeeQuote{}, fmt.Errorf("pending nonce: %w", err)
	}

	priceCtx, cancel := n.withTimeout(ctx)
	gasPrice, err := n.network.SuggestGasPrice(priceCtx)
	cancel()
	if err != nil {
		return FeeQuote{}, fmt.Errorf("gas price: %w", err)
	}
	if gasPrice == nil {
		return FeeQuote{}, fmt.Errorf("gas price: node returned no value")
	}

	return FeeQuote{Nonce: nonce, GasPrice: gasPrice}, nil
}

// estimateGas asks the node for the gas of the self-transfer and adds half
// again as margin. It never fails: on any error it returns FallbackGasLimit.
func (n *Notarizer) estimateGas(ctx context.Context, from common.Address, payload EvidencePayload) GasEstimate {
	ctx, cancel := n.withTimeout(ctx)
	defer cancel()

	to := from
	estimated, err := n.network.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: new(big.Int),
		Data:  payload.Bytes(),
	})
	if err == nil && estimated == 0 {
		err = fmt.Errorf("node estimated zero gas")
	}
	if err != nil {
		return GasEstimate{Limit: constants.FallbackGasLimit, Fallback: true, Err: err}
	}
	return GasEstimate{Limit: WithSafetyMargin(estimated)}
}

// WithSafetyMargin returns floor(g * 1.5).
func WithSafetyMargin(g uint64) uint64 {
	return g + g/2
}
