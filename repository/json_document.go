package repository

import (
	"encoding/json"
	"fmt"

	"relaybot/domain/entities"
)

// Top-level keys of the persisted document
const (
	keyTranslationChannels = "translation_channels"
	keyUserLanguages       = "user_languages"
	keyChannelSettings     = "channel_settings"
	keyTranslationStats    = "translation_stats"
)

// document is the in-memory form of the JSON state file.
// Keys this program does not know about are kept in extra and written back unchanged.
type document struct {
	channels map[string]map[string][]string // guildID -> channelID -> codes
	users    map[string]string              // userID -> code
	settings map[string]map[string]entities.Settings
	stats    entities.UsageStats
	extra    map[string]json.RawMessage
}

func newDocument() *document {
	return &document{
		channels: make(map[string]map[string][]string),
		users:    make(map[string]string),
		settings: make(map[string]map[string]entities.Settings),
		stats:    entities.NewUsageStats(),
		extra:    make(map[string]json.RawMessage),
	}
}

// decodeDocument parses the state file. Settings entries missing a field get the default for it.
func decodeDocument(data []byte) (*document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	doc := newDocument()
	for key, value := range raw {
		var err error
		switch key {
		case keyTranslationChannels:
			err = json.Unmarshal(value, &doc.channels)
		case keyUserLanguages:
			err = json.Unmarshal(value, &doc.users)
		case keyChannelSettings:
			err = decodeSettings(value, doc.settings)
		case keyTranslationStats:
			err = json.Unmarshal(value, &doc.stats)
		default:
			doc.extra[key] = value
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", key, err)
		}
	}

	// A null in the file leaves these nil
	if doc.channels == nil {
		doc.channels = make(map[string]map[string][]string)
	}
	if doc.users == nil {
		doc.users = make(map[string]string)
	}
	if doc.stats.ByChannel == nil {
		doc.stats.ByChannel = make(map[string]int64)
	}

	return doc, nil
}

func decodeSettings(value json.RawMessage, into map[string]map[string]entities.Settings) error {
	var byGuild map[string]map[string]json.RawMessage
	if err := json.Unmarshal(value, &byGuild); err != nil {
		return err
	}
	for guildID, channels := range byGuild {
		into[guildID] = make(map[string]entities.Settings, len(channels))
		for channelID, rawSettings := range channels {
			settings := entities.DefaultSettings()
			if err := json.Unmarshal(rawSettings, &settings); err != nil {
				return fmt.Errorf("channel %s: %w", channelID, err)
			}
			into[guildID][channelID] = settings
		}
	}
	return nil
}

// encode renders the document with two-space indentation
func (d *document) encode() ([]byte, error) {
	out := make(map[string]any, len(d.extra)+4)
	for key, value := range d.extra {
		out[key] = value
	}
	out[keyTranslationChannels] = d.channels
	out[keyUserLanguages] = d.users
	out[keyChannelSettings] = d.settings
	out[keyTranslationStats] = d.stats

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// clone returns a deep copy used to roll back a failed write
func (d *document) clone() *document {
	c := newDocument()
	for guildID, channels := range d.channels {
		c.channels[guildID] = make(map[string][]string, len(channels))
		for channelID, codes := range channels {
			c.channels[guildID][channelID] = append([]string(nil), codes...)
		}
	}
	for userID, code := range d.users {
		c.users[userID] = code
	}
	for guildID, channels := range d.settings {
		c.settings[guildID] = make(map[string]entities.Settings, len(channels))
		for channelID, settings := range channels {
			c.settings[guildID][channelID] = settings
		}
	}
	c.stats.Overall = d.stats.Overall
	for key, count := range d.stats.ByChannel {
		c.stats.ByChannel[key] = count
	}
	for key, value := range d.extra {
		c.extra[key] = value
	}
	return c
}

// channelConfig assembles a configuration, or nil when the channel has no languages
func (d *document) channelConfig(key entities.ChannelKey) *entities.ChannelConfig {
	codes := d.channels[key.GuildID][key.ChannelID]
	if len(codes) == 0 {
		return nil
	}
	config := entities.NewChannelConfig(key, codes)
	if settings, ok := d.settings[key.GuildID][key.ChannelID]; ok {
		config.Settings = settings
	}
	return config
}

func (d *document) putChannelConfig(config *entities.ChannelConfig) {
	key := config.Key
	if d.channels[key.GuildID] == nil {
		d.channels[key.GuildID] = make(map[string][]string)
	}
	if d.settings[key.GuildID] == nil {
		d.settings[key.GuildID] = make(map[string]entities.Settings)
	}
	d.channels[key.GuildID][key.ChannelID] = append([]string(nil), config.Languages...)
	d.settings[key.GuildID][key.ChannelID] = config.Settings
}

// removeChannel deletes the channel's languages and settings and reports whether it was configured
func (d *document) removeChannel(key entities.ChannelKey) bool {
	_, configured := d.channels[key.GuildID][key.ChannelID]
	if !configured {
		return false
	}
	delete(d.channels[key.GuildID], key.ChannelID)
	delete(d.settings[key.GuildID], key.ChannelID)
	return true
}
