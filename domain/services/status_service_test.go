package services

import (
	"context"
	"testing"

	"relaybot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_GetStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *entities.ChannelConfig
		userLang string
		hasLang  bool
		stats    *entities.ChannelStats
		expected *entities.Status
	}{
		{
			name:     "configured channel with user language",
			config:   configWith([]string{"en", "ja"}, entities.DefaultSettings()),
			userLang: "ja",
			hasLang:  true,
			stats:    &entities.ChannelStats{Overall: 12, Channel: 5},
			expected: &entities.Status{
				Languages:    []string{"en", "ja"},
				UserLanguage: "ja",
				Stats:        entities.ChannelStats{Overall: 12, Channel: 5},
			},
		},
		{
			name:     "unconfigured channel without user language",
			stats:    &entities.ChannelStats{Overall: 3},
			expected: &entities.Status{Stats: entities.ChannelStats{Overall: 3}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			mocks := NewTestMocks()
			service := NewStatusService(mocks.Store, mocks.Store, mocks.Store)

			mocks.Store.On("GetChannelConfig", ctx, TestKey).Return(tt.config, nil)
			mocks.Store.On("GetUserLanguage", ctx, TestUserID).Return(tt.userLang, tt.hasLang, nil)
			mocks.Store.On("GetChannelStats", ctx, TestKey).Return(tt.stats, nil)

			status, err := service.GetStatus(ctx, TestKey, TestUserID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
			mocks.AssertAllExpectations(t)
		})
	}
}
