package observability

// Metric name prefixes
const (
	MetricPrefix = "relaybot"
)

// Metric names
const (
	// Discord metrics
	CommandsTotal        = MetricPrefix + ".commands.total"
	MessagesRelayedTotal = MetricPrefix + ".relay.messages_total"
	RelayErrorsTotal     = MetricPrefix + ".relay.errors_total"
	WebhookFallbackTotal = MetricPrefix + ".relay.webhook_fallbacks_total"

	// Translation metrics
	TranslationsTotal   = MetricPrefix + ".translation.requests_total"
	TranslationDuration = MetricPrefix + ".translation.duration"

	// Summary metrics
	SummariesTotal = MetricPrefix + ".summaries.total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelType      = "type"
	LabelEventType = "event_type"
	LabelCommand   = "command"
	LabelDelivery  = "delivery"
	LabelOperation = "operation"
	LabelResult    = "result"
	LabelErrorType = "error_type"
)

// Delivery methods for relayed messages
const (
	DeliveryWebhook = "webhook"
	DeliveryEmbed   = "embed"
	DeliveryDirect  = "direct"
)

// Relay error types
const (
	ErrorTypeLookup    = "lookup"
	ErrorTypeTranslate = "translate"
	ErrorTypeDelivery  = "delivery"
)

// Translation operations
const (
	OperationDetect    = "detect"
	OperationTranslate = "translate"
)

// Results
const (
	ResultSuccess = "success"
	ResultError   = "error"
)
