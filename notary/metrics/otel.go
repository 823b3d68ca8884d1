package metrics

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// OTELMetrics implements MetricsRecorder using OpenTelemetry
type OTELMetrics struct {
	// Pipeline metrics
	notarizeStarted  metric.Int64Counter
	notarizeSuccess  metric.Int64Counter
	notarizeFailures metric.Int64Counter
	notarizeDuration metric.Float64Histogram
	gasLimit         metric.Int64Histogram

	// Stage metrics
	stageDuration metric.Float64Histogram
	gasFallbacks  metric.Int64Counter

	// Network health
	breakerChanges metric.Int64Counter

	logger *zap.Logger
}

// NewOTELMetrics creates a new OpenTelemetry metrics recorder
func NewOTELMetrics(meter metric.Meter, logger *zap.Logger) (*OTELMetrics, error) {
	m := &OTELMetrics{logger: logger}

	var err error

	m.notarizeStarted, err = meter.Int64Counter("notary.notarize.started",
		metric.WithDescription("Number of notarization calls started"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	m.notarizeSuccess, err = meter.Int64Counter("notary.notarize.broadcast",
		metric.WithDescription("Number of evidence transactions accepted by the node"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	m.notarizeFailures, err = meter.Int64Counter("notary.notarize.failures",
		metric.WithDescription("Number of failed notarization calls"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	m.notarizeDuration, err = meter.Float64Histogram("notary.notarize.duration",
		metric.WithDescription("Time from hashing to broadcast result"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	m.gasLimit, err = meter.Int64Histogram("notary.tx.gas_limit",
		metric.WithDescription("Gas limit of broadcast evidence transactions"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	m.stageDuration, err = meter.Float64Histogram("notary.stage.duration",
		metric.WithDescription("Time spent in each pipeline stage"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	m.gasFallbacks, err = meter.Int64Counter("notary.gas.estimate_fallbacks",
		metric.WithDescription("Number of times the fixed gas limit replaced a failed estimate"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	m.breakerChanges, err = meter.Int64Counter("notary.rpc.breaker_state_changes",
		metric.WithDescription("Circuit breaker state transitions for the rpc endpoint"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *OTELMetrics) RecordNotarizeStart(ctx context.Context) {
	m.notarizeStarted.Add(ctx, 1)
}

func (m *OTELMetrics) RecordNotarizeComplete(ctx context.Context, duration time.Duration, gasLimit uint64) {
	m.notarizeSuccess.Add(ctx, 1)
	m.notarizeDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String("status", "broadcast")))
	m.gasLimit.Record(ctx, int64(gasLimit))
}

func (m *OTELMetrics) RecordNotarizeFailure(ctx context.Context, stage, kind, reason string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("kind", kind),
		attribute.String("reason", reason),
	)
	m.notarizeFailures.Add(ctx, 1, attrs)
	m.notarizeDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String("status", "failed")))
}

func (m *OTELMetrics) RecordStageDuration(ctx context.Context, stage string, duration time.Duration) {
	m.stageDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String("stage", stage)))
}

func (m *OTELMetrics) RecordGasEstimateFallback(ctx context.Context) {
	m.gasFallbacks.Add(ctx, 1)
}

func (m *OTELMetrics) RecordCircuitBreakerStateChange(ctx context.Context, name string, from, to gobreaker.State) {
	m.breakerChanges.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("name", name),
			attribute.String("from", from.String()),
			attribute.String("to", to.String()),
		))
	m.logger.Info("rpc circuit breaker state changed",
		zap.String("name", name),
		zap.String("from", from.String()),
		zap.String("to", to.String()))
}
