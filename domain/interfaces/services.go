package interfaces

import (
	"context"

	"relaybot/domain/entities"
)

// Translator detects languages and translates text
type Translator interface {
	// DetectLanguage returns the lower-case language code of text
	DetectLanguage(ctx context.Context, text string) (string, error)

	// Translate translates text from source (empty for auto-detect) into target
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Summarizer produces a natural-language summary of a prompt
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// ChannelRegistryService manages translation channel configuration
type ChannelRegistryService interface {
	// Enable configures a channel with a comma-separated list of at least two codes
	Enable(ctx context.Context, key entities.ChannelKey, rawCodes string) (*entities.ChannelConfig, error)

	// IsConfigured reports whether a channel has a translation configuration
	IsConfigured(ctx context.Context, key entities.ChannelKey) (bool, error)

	// Disable removes a channel's configuration
	Disable(ctx context.Context, key entities.ChannelKey) error

	// GetConfig returns a channel's configuration, or nil when not configured
	GetConfig(ctx context.Context, key entities.ChannelKey) (*entities.ChannelConfig, error)

	// ListConfigs returns every configured channel
	ListConfigs(ctx context.Context) ([]*entities.ChannelConfig, error)

	// UpdateSettings applies raw advanced-settings input atomically
	UpdateSettings(ctx context.Context, key entities.ChannelKey, input entities.SettingsInput) (*entities.Settings, error)

	// Toggle flips a boolean setting
	Toggle(ctx context.Context, key entities.ChannelKey, field entities.SettingsField) (*entities.Settings, error)
}

// RelayService applies the translation fan-out policy to inbound messages
type RelayService interface {
	// Prepare returns the translations to post for a message, or nil when the channel is not configured
	Prepare(ctx context.Context, req entities.RelayRequest) (*entities.RelayPlan, error)

	// TranslateDirect detects the language of text and translates it into English
	TranslateDirect(ctx context.Context, text string) (source string, translated string, err error)
}

// UserLanguageService manages personal language preferences
type UserLanguageService interface {
	SetLanguage(ctx context.Context, userID, language string) (string, error)
	GetLanguage(ctx context.Context, userID string) (string, bool, error)
	PreferredLanguage(ctx context.Context, userID string) (string, error)
}

// StatusService reports channel configuration and counters
type StatusService interface {
	GetStatus(ctx context.Context, key entities.ChannelKey, userID string) (*entities.Status, error)
}

// TranslationService handles ad-hoc translation requests
type TranslationService interface {
	TranslateText(ctx context.Context, text, target string) (*entities.AdHocTranslation, error)
}

// SummaryService summarizes a conversation for a user
type SummaryService interface {
	Summarize(ctx context.Context, userID string, lines []entities.ChatLine) (*entities.Summary, error)
}
