package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"relaybot/config"
	"relaybot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
)

func newManualProvider(t *testing.T) (*MetricsProvider, *sdkmetric.ManualReader) {
	t.Helper()
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true

	reader := sdkmetric.NewManualReader()
	mp := NewMetricsProvider(cfg)
	mp.mu.Lock()
	err := mp.initializeWithReader(resource.Default(), reader)
	mp.mu.Unlock()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestMetricsProvider_DisabledIsNoop(t *testing.T) {
	cfg := config.NewTestConfig()
	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))

	assert.NotPanics(t, func() {
		mp.RecordCommand("status")
		mp.RecordMessageRelayed(DeliveryWebhook)
		mp.RecordTranslation(OperationDetect, time.Millisecond, nil)
	})

	var nilProvider *MetricsProvider
	assert.NotPanics(t, func() { nilProvider.RecordWebhookFallback() })
}

func TestMetricsProvider_NoneExporterIsNoop(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "none"

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	assert.NotPanics(t, func() { mp.RecordSummary(nil) })
}

func TestMetricsProvider_UnknownExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "carrier-pigeon"

	err := NewMetricsProvider(cfg).Initialize(context.Background())
	assert.ErrorContains(t, err, "unknown exporter type")
}

func TestMetricsProvider_Records(t *testing.T) {
	mp, reader := newManualProvider(t)

	mp.RecordMessageRelayed(DeliveryWebhook)
	mp.RecordMessageRelayed(DeliveryEmbed)
	mp.RecordRelayError(ErrorTypeTranslate)
	mp.RecordWebhookFallback()
	mp.RecordCommand("status")

	assert.Equal(t, int64(2), counterTotal(t, reader, MessagesRelayedTotal))
	assert.Equal(t, int64(1), counterTotal(t, reader, RelayErrorsTotal))
	assert.Equal(t, int64(1), counterTotal(t, reader, WebhookFallbackTotal))
	assert.Equal(t, int64(1), counterTotal(t, reader, CommandsTotal))
}

func TestInstrumentedTranslator(t *testing.T) {
	mp, reader := newManualProvider(t)

	next := new(testhelpers.MockTranslator)
	next.On("DetectLanguage", mock.Anything, "hola").Return("es", nil)
	next.On("Translate", mock.Anything, "hola", "es", "en").Return("", errors.New("quota"))

	translator := NewInstrumentedTranslator(next, mp)

	lang, err := translator.DetectLanguage(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "es", lang)

	_, err = translator.Translate(context.Background(), "hola", "es", "en")
	assert.Error(t, err)

	assert.Equal(t, int64(2), counterTotal(t, reader, TranslationsTotal))
	next.AssertExpectations(t)
}
