package observability

import (
	"context"
	"time"

	"relaybot/domain/interfaces"
)

// InstrumentedTranslator records a metric for every call to the wrapped Translator
type InstrumentedTranslator struct {
	next    interfaces.Translator
	metrics *MetricsProvider
}

// NewInstrumentedTranslator wraps next
func NewInstrumentedTranslator(next interfaces.Translator, metrics *MetricsProvider) *InstrumentedTranslator {
	return &InstrumentedTranslator{next: next, metrics: metrics}
}

func (t *InstrumentedTranslator) DetectLanguage(ctx context.Context, text string) (string, error) {
	start := time.Now()
	lang, err := t.next.DetectLanguage(ctx, text)
	t.metrics.RecordTranslation(OperationDetect, time.Since(start), err)
	return lang, err
}

func (t *InstrumentedTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	start := time.Now()
	out, err := t.next.Translate(ctx, text, source, target)
	t.metrics.RecordTranslation(OperationTranslate, time.Since(start), err)
	return out, err
}
