package notary

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trufnetwork/notary/notary/config"
	"github.com/trufnetwork/notary/notary/metrics"
	"github.com/trufnetwork/notary/notary/validation"
)

// Notarizer runs the evidence anchoring pipeline. It is safe for concurrent
// use; every call builds its own draft and signed transaction.
type Notarizer struct {
	cfg     *config.ProcessedConfig
	network Network
	signer  *Signer
	logger  *zap.Logger
	metrics metrics.MetricsRecorder
}

// Option configures a Notarizer
type Option func(*Notarizer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Notarizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. The default records nothing.
func WithMetrics(recorder metrics.MetricsRecorder) Option {
	return func(n *Notarizer) {
		if recorder != nil {
			n.metrics = recorder
		}
	}
}

// New validates the configuration and derives the signing account. It does
// not touch the network: a bad configuration fails here, before any call.
func New(cfg *config.ProcessedConfig, network Network, opts ...Option) (*Notarizer, error) {
	if cfg == nil {
		return nil, errors.Wrap(config.ErrInvalidConfig, "configuration is required")
	}
	if err := validation.ValidateEndpoint(cfg.RPCURL); err != nil {
		return nil, errors.Wrapf(config.ErrInvalidConfig, "rpc_url: %v", err)
	}
	if err := validation.ValidatePrivateKey(cfg.PrivateKey); err != nil {
		return nil, errors.Wrapf(config.ErrInvalidConfig, "private_key: %v", err)
	}
	if network == nil {
		return nil, errors.New("network client is required")
	}

	signer, err := NewSigner(cfg.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(config.ErrInvalidConfig, err.Error())
	}

	n := &Notarizer{
		cfg:     cfg,
		network: network,
		signer:  signer,
		logger:  zap.NewNop(),
		metrics: metrics.NewNoOpMetrics(),
	}
	for _, opt := range opts {
		opt(n)
	}

	n.logger.Info("notary signer loaded",
		zap.String("address", signer.Address().Hex()),
		zap.String("key_hint", signer.KeyHint()),
		zap.String("rpc_url", validation.RedactEndpoint(cfg.RPCURL)))
	return n, nil
}

// Address returns the account evidence transactions are sent from and to
func (n *Notarizer) Address() string {
	return n.signer.Address().Hex()
}

// NotarizeText is the string contract used by agents and the CLI: it returns
// a message with the explorer link, or a message starting with ErrorPrefix.
func (n *Notarizer) NotarizeText(ctx context.Context, text string) string {
	return n.Notarize(ctx, []byte(text)).String()
}

// Notarize anchors the document's fingerprint. Failures are returned in the
// Result, never as a panic or error, so a caller loop survives them.
func (n *Notarizer) Notarize(ctx context.Context, document []byte) Result {
	start := time.Now()
	logger := n.logger.With(zap.String("request_id", uuid.NewString()))
	n.metrics.RecordNotarizeStart(ctx)

	res := Result{Stage: StageIdle}

	fp := DeriveFingerprint(document)
	res.Fingerprint = fp
	res.Stage = StageHashComputed

	payload := EncodePayload(fp)
	res.Stage = StagePayloadEncoded
	logger.Debug("evidence payload encoded",
		zap.String("fingerprint", fp.Hex()),
		zap.Int("document_bytes", len(document)))

	// Liveness probe; also yields the chain id for replay protection.
	stageStart := time.Now()
	chainID, err := n.chainID(ctx)
	if err != nil {
		return n.fail(ctx, logger, res, start, connectivityFailure(res.Stage, "node unreachable", err))
	}
	if n.cfg.ExpectedChainID != 0 && chainID.Uint64() != n.cfg.ExpectedChainID {
		f := &Failure{
			Kind:   KindConnectivity,
			Stage:  res.Stage,
			Reason: fmt.Sprintf("node serves chain %s, expected %d", chainID.String(), n.cfg.ExpectedChainID),
			Code:   "wrong_chain",
		}
		return n.fail(ctx, logger, res, start, f)
	}

	from := n.signer.Address()
	var (
		fees FeeQuote
		gas  GasEstimate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fees, err = n.resolveFees(gctx, from)
		return err
	})
	g.Go(func() error {
		gas = n.estimateGas(gctx, from, payload)
		return nil
	})
	if err := g.Wait(); err != nil {
		return n.fail(ctx, logger, res, start, connectivityFailure(res.Stage, "could not resolve nonce and gas price", err))
	}
	res.Stage = StageResolved
	res.Nonce = fees.Nonce
	res.GasLimit = gas.Limit
	n.metrics.RecordStageDuration(ctx, StageResolved.String(), time.Since(stageStart))
	if gas.Fallback {
		n.metrics.RecordGasEstimateFallback(ctx)
		logger.Warn("gas estimation failed, using fixed gas limit",
			zap.Uint64("gas_limit", gas.Limit),
			zap.Error(gas.Err))
	}

	draft, err := newDraft(chainID, from, fees, gas.Limit, payload)
	if err != nil {
		return n.fail(ctx, logger, res, start, &Failure{Kind: KindSigning, Stage: res.Stage, Reason: err.Error(), Code: "draft", Err: err})
	}
	signed, err := n.signer.SignDraft(draft)
	if err != nil {
		return n.fail(ctx, logger, res, start, &Failure{Kind: KindSigning, Stage: res.Stage, Reason: err.Error(), Code: "sign", Err: err})
	}
	res.Stage = StageSigned
	logger.Debug("evidence transaction signed",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("nonce", signed.Nonce()),
		zap.Uint64("gas_limit", draft.GasLimit()),
		zap.Stringer("gas_price", draft.GasPrice()),
		zap.Stringer("chain_id", chainID))

	stageStart = time.Now()
	txHash, failure := n.broadcast(ctx, logger, signed)
	n.metrics.RecordStageDuration(ctx, StageBroadcast.String(), time.Since(stageStart))
	if failure != nil {
		failure.Stage = res.Stage
		return n.fail(ctx, logger, res, start, failure)
	}

	res.Stage = StageBroadcast
	res.Status = StatusConfirmed
	res.TxHash = txHash
	res.ExplorerURL = n.cfg.ExplorerTxURL + txHash.Hex()

	duration := time.Since(start)
	n.metrics.RecordNotarizeComplete(ctx, duration, gas.Limit)
	logger.Info("evidence transaction broadcast",
		zap.String("fingerprint", fp.Hex()),
		zap.String("tx_hash", txHash.Hex()),
		zap.String("explorer_url", res.ExplorerURL),
		zap.Duration("duration", duration))
	return res
}

func (n *Notarizer) fail(ctx context.Context, logger *zap.Logger, res Result, start time.Time, f *Failure) Result {
	res.Status = StatusFailed
	res.Failure = f
	duration := time.Since(start)
	n.metrics.RecordNotarizeFailure(ctx, f.Stage.String(), string(f.Kind), f.Code, duration)
	logger.Warn("notarization failed",
		zap.String("kind", string(f.Kind)),
		zap.Stringer("stage", f.Stage),
		zap.String("code", f.Code),
		zap.String("reason", f.Reason),
		zap.Duration("duration", duration))
	return res
}

func connectivityFailure(stage Stage, what string, err error) *Failure {
	return &Failure{
		Kind:   KindConnectivity,
		Stage:  stage,
		Reason: fmt.Sprintf("%s: %v", what, err),
		Code:   "unreachable",
		Err:    err,
	}
}

// withTimeout bounds a single network call
func (n *Notarizer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if n.cfg.RPCTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, n.cfg.RPCTimeout)
}

func (n *Notarizer) chainID(ctx context.Context) (*big.Int, error) {
	ctx, cancel := n.withTimeout(ctx)
	defer cancel()

	id, err := n.network.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	if id == nil || id.Sign() <= 0 {
		return nil, fmt.Errorf("node returned invalid chain id %v", id)
	}
	return id, nil
}
