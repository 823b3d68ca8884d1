// Package metrics provides observability for the notarization pipeline.
// It uses a plugin pattern so that nothing is recorded when OpenTelemetry is not configured.
package metrics

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const meterName = "github.com/trufnetwork/notary/notary"

// MetricsRecorder defines the interface for recording notarization metrics.
// This allows for pluggable implementations - either real OTEL metrics or no-op.
type MetricsRecorder interface {
	// Pipeline metrics
	RecordNotarizeStart(ctx context.Context)
	RecordNotarizeComplete(ctx context.Context, duration time.Duration, gasLimit uint64)
	RecordNotarizeFailure(ctx context.Context, stage, kind, reason string, duration time.Duration)

	// Stage metrics
	RecordStageDuration(ctx context.Context, stage string, duration time.Duration)
	RecordGasEstimateFallback(ctx context.Context)

	// Network health
	RecordCircuitBreakerStateChange(ctx context.Context, name string, from, to gobreaker.State)
}

// NewMetricsRecorder creates a metrics recorder instance.
// It returns a real OTEL implementation when the global meter provider can
// create instruments and a no-op implementation otherwise.
func NewMetricsRecorder(logger *zap.Logger) MetricsRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}

	meter := otel.GetMeterProvider().Meter(meterName)

	// Try to create a test metric to verify OTEL is functional
	if _, err := meter.Int64Counter("notary.test"); err != nil {
		logger.Debug("OpenTelemetry not available, metrics disabled")
		return NewNoOpMetrics()
	}

	otelMetrics, err := NewOTELMetrics(meter, logger)
	if err != nil {
		logger.Warn("failed to initialize OTEL metrics, falling back to no-op", zap.Error(err))
		return NewNoOpMetrics()
	}

	logger.Debug("OpenTelemetry metrics initialized")
	return otelMetrics
}
