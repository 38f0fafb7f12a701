package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// ErrNoDetection is returned when the API yields no detection for a text
var ErrNoDetection = errors.New("no language detected")

// GoogleTranslator implements the Translator interface with the Cloud Translation API
type GoogleTranslator struct {
	client *translate.Client
}

// NewGoogleTranslator creates a translator authenticated with an API key.
// Additional client options (endpoint, HTTP client) are passed through.
func NewGoogleTranslator(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GoogleTranslator, error) {
	if apiKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	}
	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translate client: %w", err)
	}
	return &GoogleTranslator{client: client}, nil
}

// DetectLanguage returns the most confident detection as a lower-case code
func (t *GoogleTranslator) DetectLanguage(ctx context.Context, text string) (string, error) {
	detections, err := t.client.DetectLanguage(ctx, []string{text})
	if err != nil {
		return "", fmt.Errorf("failed to detect language: %w", err)
	}
	if len(detections) == 0 || len(detections[0]) == 0 {
		return "", ErrNoDetection
	}

	best := detections[0][0]
	for _, d := range detections[0][1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	return TagToCode(best.Language), nil
}

// Translate translates text into target. An empty source lets the API detect it.
func (t *GoogleTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	targetTag, err := language.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid target language %q: %w", target, err)
	}

	opts := &translate.Options{Format: translate.Text}
	if source != "" {
		sourceTag, err := language.Parse(source)
		if err != nil {
			return "", fmt.Errorf("invalid source language %q: %w", source, err)
		}
		opts.Source = sourceTag
	}

	translations, err := t.client.Translate(ctx, []string{text}, targetTag, opts)
	if err != nil {
		return "", fmt.Errorf("failed to translate to %s: %w", target, err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("empty translation response for %s", target)
	}
	return translations[0].Text, nil
}

// Close releases the underlying client
func (t *GoogleTranslator) Close() error {
	return t.client.Close()
}

// TagToCode renders a language tag the way codes are stored, e.g. "zh-cn"
func TagToCode(tag language.Tag) string {
	return strings.ToLower(tag.String())
}
