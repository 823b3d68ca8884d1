package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func TestInstallOTLPMeterProviderExports(t *testing.T) {
	var posts atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/metrics" {
			posts.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(collector.Close)

	previous := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	shutdown, err := InstallOTLPMeterProvider(context.Background(), collector.URL+"/v1/metrics", time.Hour, zap.NewNop())
	require.NoError(t, err)

	recorder := NewMetricsRecorder(zap.NewNop())
	_, isOTEL := recorder.(*OTELMetrics)
	assert.True(t, isOTEL)
	recorder.RecordNotarizeStart(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, shutdown(ctx), "shutdown flushes to the collector")
	assert.GreaterOrEqual(t, posts.Load(), int32(1))
}
