package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"relaybot/config"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// MetricsProvider manages OpenTelemetry metrics for the bot.
// All Record methods are no-ops until Initialize has set up an exporter.
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	enabled       bool
	mu            sync.RWMutex

	// Metric instruments
	commandsCounter         metric.Int64Counter
	messagesRelayedCounter  metric.Int64Counter
	relayErrorsCounter      metric.Int64Counter
	webhookFallbackCounter  metric.Int64Counter
	translationsCounter     metric.Int64Counter
	translationDurationHist metric.Float64Histogram
	summariesCounter        metric.Int64Counter
	natsPublishedCounter    metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.enabled {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		// Schemaless so the SDK's default schema URL wins the merge
		resource.NewSchemaless(
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdkmetric.Exporter
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	return mp.initializeWithReader(res, sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
	))
}

// initializeWithReader builds the meter provider around reader. Caller holds mp.mu.
func (mp *MetricsProvider) initializeWithReader(res *resource.Resource, reader sdkmetric.Reader) error {
	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("relaybot")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.enabled = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	var err error

	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
	}{
		{&mp.commandsCounter, CommandsTotal, "Total number of slash commands handled"},
		{&mp.messagesRelayedCounter, MessagesRelayedTotal, "Total number of messages relayed with translations"},
		{&mp.relayErrorsCounter, RelayErrorsTotal, "Total number of messages dropped by relay errors"},
		{&mp.webhookFallbackCounter, WebhookFallbackTotal, "Total number of relays that fell back to an embed"},
		{&mp.translationsCounter, TranslationsTotal, "Total number of translation API calls"},
		{&mp.summariesCounter, SummariesTotal, "Total number of conversation summaries"},
		{&mp.natsPublishedCounter, NATSMessagesPublishedTotal, "Total number of NATS messages published"},
	}

	for _, c := range counters {
		*c.target, err = mp.meter.Int64Counter(c.name,
			metric.WithDescription(c.description),
			metric.WithUnit("1"),
		)
		if err != nil {
			return fmt.Errorf("failed to create counter %s: %w", c.name, err)
		}
	}

	mp.translationDurationHist, err = mp.meter.Float64Histogram(
		TranslationDuration,
		metric.WithDescription("Duration of translation API calls in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
	)
	if err != nil {
		return fmt.Errorf("failed to create translation duration histogram: %w", err)
	}

	return nil
}

// Shutdown flushes and shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordCommand records a handled slash command
func (mp *MetricsProvider) RecordCommand(command string) {
	if !mp.isEnabled() {
		return
	}
	mp.commandsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelCommand, command)),
	)
}

// RecordMessageRelayed records a delivered relay
func (mp *MetricsProvider) RecordMessageRelayed(delivery string) {
	if !mp.isEnabled() {
		return
	}
	mp.messagesRelayedCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelDelivery, delivery)),
	)
}

// RecordRelayError records a message dropped by the relay
func (mp *MetricsProvider) RecordRelayError(errorType string) {
	if !mp.isEnabled() {
		return
	}
	mp.relayErrorsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelErrorType, errorType)),
	)
}

// RecordWebhookFallback records a relay posted as an embed after a webhook failure
func (mp *MetricsProvider) RecordWebhookFallback() {
	if !mp.isEnabled() {
		return
	}
	mp.webhookFallbackCounter.Add(context.Background(), 1)
}

// RecordTranslation records one translation API call with its duration
func (mp *MetricsProvider) RecordTranslation(operation string, duration time.Duration, err error) {
	if !mp.isEnabled() {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(LabelOperation, operation),
		attribute.String(LabelResult, resultOf(err)),
	)
	mp.translationsCounter.Add(context.Background(), 1, attrs)
	mp.translationDurationHist.Record(context.Background(), duration.Seconds(), attrs)
}

// RecordSummary records a summarize request outcome
func (mp *MetricsProvider) RecordSummary(err error) {
	if !mp.isEnabled() {
		return
	}
	mp.summariesCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelResult, resultOf(err))),
	)
}

// RecordNATSMessagePublished records a NATS message being published
func (mp *MetricsProvider) RecordNATSMessagePublished(eventType string) {
	if !mp.isEnabled() {
		return
	}
	mp.natsPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelEventType, eventType)),
	)
}

// isEnabled checks if instruments exist
func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.enabled
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
