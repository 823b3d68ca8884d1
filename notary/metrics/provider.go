package metrics

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/zap"

	"github.com/trufnetwork/notary/notary/validation"
)

const (
	serviceName = "notary"
	// DefaultExportInterval is how often metrics are pushed to the collector
	DefaultExportInterval = 30 * time.Second
)

// InstallOTLPMeterProvider pushes metrics to an OTLP/HTTP collector at
// endpointURL (e.g. http://collector:4318/v1/metrics) and installs the
// provider globally, so recorders created afterwards export through it.
// The returned func flushes pending metrics and stops the exporter.
func InstallOTLPMeterProvider(ctx context.Context, endpointURL string, interval time.Duration, logger *zap.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultExportInterval
	}

	exporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpointURL(endpointURL))
	if err != nil {
		return nil, errors.Wrap(err, "create otlp metric exporter")
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
		sdkmetric.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetMeterProvider(provider)

	logger.Info("otlp metrics exporter installed",
		zap.String("endpoint", validation.RedactEndpoint(endpointURL)),
		zap.Duration("interval", interval))
	return provider.Shutdown, nil
}
