package interfaces

import (
	"context"

	"relaybot/domain/entities"
	"relaybot/events"
)

// ChannelConfigRepository defines persistence for channel translation configuration.
// Every mutating call is durable when it returns.
type ChannelConfigRepository interface {
	// GetChannelConfig returns the channel's configuration, or nil when not configured
	GetChannelConfig(ctx context.Context, key entities.ChannelKey) (*entities.ChannelConfig, error)

	// SaveChannelConfig creates or replaces a channel's languages and settings
	SaveChannelConfig(ctx context.Context, config *entities.ChannelConfig) error

	// DeleteChannelConfig removes a channel's configuration; it reports whether one existed
	DeleteChannelConfig(ctx context.Context, key entities.ChannelKey) (bool, error)

	// ListChannelConfigs returns every configured channel
	ListChannelConfigs(ctx context.Context) ([]*entities.ChannelConfig, error)
}

// UserLanguageRepository defines persistence for per-user language preferences
type UserLanguageRepository interface {
	// GetUserLanguage returns the user's language and whether one is set
	GetUserLanguage(ctx context.Context, userID string) (string, bool, error)

	// SetUserLanguage stores or overwrites the user's language
	SetUserLanguage(ctx context.Context, userID, language string) error
}

// StatsRepository defines persistence for relay counters
type StatsRepository interface {
	// IncrementRelayed atomically adds one to the overall and per-channel counters
	IncrementRelayed(ctx context.Context, key entities.ChannelKey) (*entities.ChannelStats, error)

	// GetChannelStats returns the overall and per-channel counters
	GetChannelStats(ctx context.Context, key entities.ChannelKey) (*entities.ChannelStats, error)
}

// Store aggregates all repositories behind one persistence backend
type Store interface {
	ChannelConfigRepository
	UserLanguageRepository
	StatsRepository

	// Close releases the backend's resources
	Close() error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
