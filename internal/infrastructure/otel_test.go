package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/MikuMikuMe/data-cleanser/internal/config"
	"github.com/MikuMikuMe/data-cleanser/internal/shared/testutil"
)

func TestInitializeTelemetry_Disabled(t *testing.T) {
	providers, err := InitializeTelemetry(config.TelemetryConfig{}, testutil.NewCaptureHandler(t).Logger())

	require.NoError(t, err)
	require.NotNil(t, providers)
	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.Tracer)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.Meter)
	assert.Nil(t, providers.PrometheusHTTP)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeTelemetry_NoneExportersLeaveProvidersNil(t *testing.T) {
	cfg := config.TelemetryConfig{
		EnableTracing:  true,
		EnableMetrics:  true,
		TraceExporter:  "none",
		MetricExporter: "none",
		SampleRatio:    1.0,
	}

	providers, err := InitializeTelemetry(cfg, testutil.NewCaptureHandler(t).Logger())

	require.NoError(t, err)
	assert.Nil(t, providers.Tracer)
	assert.Nil(t, providers.Meter)
	assert.Nil(t, providers.PrometheusHTTP)
}

func TestInitializeTelemetry_StdoutTracing(t *testing.T) {
	cfg := config.TelemetryConfig{
		EnableTracing: true,
		TraceExporter: "stdout",
		SampleRatio:   1.0,
	}

	providers, err := InitializeTelemetry(cfg, testutil.NewCaptureHandler(t).Logger())
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)
	require.NotNil(t, providers.Tracer)

	ctx, span := providers.Tracer.Start(context.Background(), "test-operation")
	assert.Equal(t, span.SpanContext().TraceID().String(), TraceIDFromContext(ctx))
	RecordError(ctx, fmt.Errorf("boom"))
	span.End()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(shutdownCtx))
}

func TestInitializeTelemetry_UnsupportedExporters(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{
			name: "unsupported trace exporter",
			cfg: config.TelemetryConfig{
				EnableTracing: true,
				TraceExporter: "jaeger",
				SampleRatio:   1.0,
			},
		},
		{
			name: "unsupported metric exporter",
			cfg: config.TelemetryConfig{
				EnableMetrics:  true,
				MetricExporter: "statsd",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers, err := InitializeTelemetry(tt.cfg, testutil.NewCaptureHandler(t).Logger())

			require.Error(t, err)
			assert.Nil(t, providers)
			assert.Contains(t, err.Error(), "unsupported")
		})
	}
}

// The prometheus exporter registers with the process-global registry, so
// every assertion against it lives in this single test.
func TestInitializeTelemetry_PrometheusMetrics(t *testing.T) {
	cfg := config.TelemetryConfig{
		EnableMetrics:  true,
		MetricExporter: "prometheus",
	}

	providers, err := InitializeTelemetry(cfg, testutil.NewCaptureHandler(t).Logger())
	require.NoError(t, err)
	require.NotNil(t, providers.MeterProvider)
	require.NotNil(t, providers.Meter)
	require.NotNil(t, providers.PrometheusHTTP)
	defer providers.Shutdown(context.Background())

	metrics, err := NewPipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordOperation(ctx, "fill_missing", 25*time.Millisecond, true)
	metrics.RecordColumnErrors(ctx, "encode_categorical", 2)
	metrics.CellsFilledTotal.Add(ctx, 3)

	srv := httptest.NewServer(providers.PrometheusHTTP)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "preprocess_operations_total")
	assert.Contains(t, string(body), "preprocess_column_errors_total")
	assert.Contains(t, string(body), "preprocess_cells_filled_total")
	assert.Contains(t, string(body), `operation="fill_missing"`)
}

func TestNewPipelineMetrics_CreatesAllInstruments(t *testing.T) {
	meter := sdkmetric.NewMeterProvider().Meter("test")

	metrics, err := NewPipelineMetrics(meter)

	require.NoError(t, err)
	assert.NotNil(t, metrics.OperationsTotal)
	assert.NotNil(t, metrics.OperationDuration)
	assert.NotNil(t, metrics.CellsFilledTotal)
	assert.NotNil(t, metrics.DuplicatesRemoved)
	assert.NotNil(t, metrics.ColumnsEncoded)
	assert.NotNil(t, metrics.ColumnsNormalized)
	assert.NotNil(t, metrics.ColumnErrorsTotal)
}

func TestPipelineMetrics_NilReceiverIsSafe(t *testing.T) {
	var metrics *PipelineMetrics

	assert.NotPanics(t, func() {
		metrics.RecordOperation(context.Background(), "fill_missing", time.Millisecond, false)
		metrics.RecordColumnErrors(context.Background(), "normalize_numerical", 1)
	})
}

func TestRecordError_WithoutSpanIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(context.Background(), fmt.Errorf("boom"))
	})
}
