package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trufnetwork/notary/notary"
	"github.com/trufnetwork/notary/notary/chain"
	"github.com/trufnetwork/notary/notary/config"
	"github.com/trufnetwork/notary/notary/metrics"
)

const metricsFlushTimeout = 5 * time.Second

// dialBackend connects to the configured node. Tests replace it.
var dialBackend = func(ctx context.Context, cfg *config.ProcessedConfig, logger *zap.Logger, recorder metrics.MetricsRecorder) (chain.Backend, func(), error) {
	client, err := chain.Dial(ctx, cfg.RPCURL, chain.DialOptions{
		Attempts: cfg.DialAttempts,
		Timeout:  cfg.RPCTimeout,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("rpc backend ready",
		zap.String("endpoint", client.Endpoint()),
		zap.Bool("circuit_breaker", cfg.CircuitBreaker))
	if !cfg.CircuitBreaker {
		return client, client.Close, nil
	}
	return chain.NewCircuitBreaker(client, "rpc", logger, recorder), client.Close, nil
}

// runtime is everything a command needs to talk to the chain
type runtime struct {
	cfg      *config.ProcessedConfig
	backend  chain.Backend
	recorder metrics.MetricsRecorder
	logger   *zap.Logger
	close    func()
}

func newRuntime(ctx context.Context, cfg *config.ProcessedConfig, logger *zap.Logger) (*runtime, error) {
	stopMetrics := func() {}
	if cfg.MetricsEndpoint != "" {
		shutdown, err := metrics.InstallOTLPMeterProvider(ctx, cfg.MetricsEndpoint, metrics.DefaultExportInterval, logger)
		if err != nil {
			return nil, err
		}
		stopMetrics = func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), metricsFlushTimeout)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				logger.Warn("failed to flush metrics", zap.Error(err))
			}
		}
	}

	recorder := metrics.NewMetricsRecorder(logger)
	backend, closeFn, err := dialBackend(ctx, cfg, logger, recorder)
	if err != nil {
		stopMetrics()
		return nil, err
	}
	closeAll := func() {
		closeFn()
		stopMetrics()
	}
	return &runtime{
		cfg:      cfg,
		backend:  backend,
		recorder: recorder,
		logger:   logger,
		close:    closeAll,
	}, nil
}

func (r *runtime) notarizer() (*notary.Notarizer, error) {
	return notary.New(r.cfg, r.backend,
		notary.WithLogger(r.logger),
		notary.WithMetrics(r.recorder))
}

func (r *runtime) verifier() *notary.Verifier {
	return notary.NewVerifier(r.backend, r.cfg.RPCTimeout)
}

func (r *runtime) Close() {
	if r.close != nil {
		r.close()
	}
}

// NewNotarizerFromEnv loads configuration from the environment, connects to
// the node and builds a notarizer. The returned func closes the connection.
func NewNotarizerFromEnv(ctx context.Context, logger *zap.Logger) (*notary.Notarizer, func(), error) {
	cfg, err := config.NewLoader(logger).Load("")
	if err != nil {
		return nil, nil, err
	}
	rt, err := newRuntime(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	n, err := rt.notarizer()
	if err != nil {
		rt.Close()
		return nil, nil, err
	}
	return n, rt.Close, nil
}
