package infrastructure

import (
	"context"
	"fmt"

	"relaybot/domain/interfaces"

	"golang.org/x/time/rate"
)

// RateLimitedTranslator throttles calls to a wrapped Translator with a token bucket
type RateLimitedTranslator struct {
	next    interfaces.Translator
	limiter *rate.Limiter
}

// NewRateLimitedTranslator allows ratePerSecond calls per second with the given burst
func NewRateLimitedTranslator(next interfaces.Translator, ratePerSecond float64, burst int) *RateLimitedTranslator {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedTranslator{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// DetectLanguage waits for a token then delegates
func (t *RateLimitedTranslator) DetectLanguage(ctx context.Context, text string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translation rate limit: %w", err)
	}
	return t.next.DetectLanguage(ctx, text)
}

// Translate waits for a token then delegates
func (t *RateLimitedTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translation rate limit: %w", err)
	}
	return t.next.Translate(ctx, text, source, target)
}
