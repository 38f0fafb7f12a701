package events

import "time"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeChannelEnabled         EventType = "channel_enabled"
	EventTypeChannelDisabled        EventType = "channel_disabled"
	EventTypeChannelSettingsUpdated EventType = "channel_settings_updated"
	EventTypeMessageRelayed         EventType = "message_relayed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// ChannelEnabledEvent is emitted when a channel is configured or its language list replaced
type ChannelEnabledEvent struct {
	GuildID   string   `json:"guild_id"`
	ChannelID string   `json:"channel_id"`
	Languages []string `json:"languages"`
	Replaced  bool     `json:"replaced"` // True when an existing configuration was replaced
}

func (e ChannelEnabledEvent) Type() EventType {
	return EventTypeChannelEnabled
}

// ChannelDisabledEvent is emitted when translation is removed from a channel
type ChannelDisabledEvent struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
}

func (e ChannelDisabledEvent) Type() EventType {
	return EventTypeChannelDisabled
}

// ChannelSettingsUpdatedEvent is emitted after any settings change
type ChannelSettingsUpdatedEvent struct {
	GuildID           string `json:"guild_id"`
	ChannelID         string `json:"channel_id"`
	AutoDelete        bool   `json:"auto_delete"`
	AutoDeleteSeconds int    `json:"auto_delete_seconds"`
	ShowFlags         bool   `json:"show_flags"`
}

func (e ChannelSettingsUpdatedEvent) Type() EventType {
	return EventTypeChannelSettingsUpdated
}

// MessageRelayedEvent is emitted after translations were delivered to a channel
type MessageRelayedEvent struct {
	GuildID          string    `json:"guild_id"`
	ChannelID        string    `json:"channel_id"`
	MessageID        string    `json:"message_id"`
	SourceLanguage   string    `json:"source_language"`
	TranslationCount int       `json:"translation_count"`
	ViaWebhook       bool      `json:"via_webhook"`
	RelayedAt        time.Time `json:"relayed_at"`
}

func (e MessageRelayedEvent) Type() EventType {
	return EventTypeMessageRelayed
}
