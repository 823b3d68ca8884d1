package metrics

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// NoOpMetrics is a no-op implementation of MetricsRecorder.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new no-op metrics recorder
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

func (n *NoOpMetrics) RecordNotarizeStart(ctx context.Context) {}

func (n *NoOpMetrics) RecordNotarizeComplete(ctx context.Context, duration time.Duration, gasLimit uint64) {
}

func (n *NoOpMetrics) RecordNotarizeFailure(ctx context.Context, stage, kind, reason string, duration time.Duration) {
}

func (n *NoOpMetrics) RecordStageDuration(ctx context.Context, stage string, duration time.Duration) {
}

func (n *NoOpMetrics) RecordGasEstimateFallback(ctx context.Context) {}

func (n *NoOpMetrics) RecordCircuitBreakerStateChange(ctx context.Context, name string, from, to gobreaker.State) {
}
