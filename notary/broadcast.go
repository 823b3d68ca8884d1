package notary

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	rpcerrors "github.com/trufnetwork/notary/notary/internal/errors"
)

// broadcast submits the signed transaction exactly once. It does not wait for
// inclusion. A rejected transaction is not resubmitted: a retry needs a newly
// resolved nonce and therefore a new transaction.
func (n *Notarizer) broadcast(ctx context.Context, logger *zap.Logger, signed *SignedTransaction) (common.Hash, *Failure) {
	ctx, cancel := n.withTimeout(ctx)
	defer cancel()

	hash, err := n.network.SendRawTransaction(ctx, signed.Transaction())
	if err != nil {
		if rpcerrors.IsConnectivityError(err) {
			return common.Hash{}, &Failure{
				Kind:   KindConnectivity,
				Reason: "broadcast failed: " + err.Error(),
				Code:   "unreachable",
				Err:    err,
			}
		}
		return common.Hash{}, &Failure{
			Kind:   KindSubmission,
			Reason: "transaction rejected: " + err.Error(),
			Code:   rpcerrors.SubmissionReason(err),
			Err:    err,
		}
	}

	if hash == (common.Hash{}) {
		hash = signed.Hash()
	} else if hash != signed.Hash() {
		logger.Warn("node reported a different transaction hash",
			zap.String("node_hash", hash.Hex()),
			zap.String("local_hash", signed.Hash().Hex()))
	}
	return hash, nil
}
