package infrastructure

import (
	"context"
	"testing"

	"relaybot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRateLimitedTranslator_Delegates(t *testing.T) {
	next := new(testhelpers.MockTranslator)
	next.On("DetectLanguage", mock.Anything, "hola").Return("es", nil)
	next.On("Translate", mock.Anything, "hola", "es", "en").Return("hello", nil)

	translator := NewRateLimitedTranslator(next, 100, 2)
	ctx := context.Background()

	lang, err := translator.DetectLanguage(ctx, "hola")
	require.NoError(t, err)
	assert.Equal(t, "es", lang)

	text, err := translator.Translate(ctx, "hola", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	next.AssertExpectations(t)
}

func TestRateLimitedTranslator_CancelledContext(t *testing.T) {
	next := new(testhelpers.MockTranslator)
	// A tiny rate with burst 1: the first call drains the bucket
	next.On("DetectLanguage", mock.Anything, "a").Return("en", nil).Once()
	translator := NewRateLimitedTranslator(next, 0.001, 1)

	_, err := translator.DetectLanguage(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = translator.Translate(ctx, "b", "en", "ja")
	assert.ErrorContains(t, err, "translation rate limit")
	next.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
