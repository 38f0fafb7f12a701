package testutil

import (
	"fmt"

	"relaybot/domain/entities"
)

// ChannelKey builds a key for test guild and channel numbers
func ChannelKey(guild, channel int) entities.ChannelKey {
	return entities.ChannelKey{
		GuildID:   fmt.Sprintf("%d", 100000+guild),
		ChannelID: fmt.Sprintf("%d", 200000+channel),
	}
}

// CreateTestChannelConfig creates a channel config with default settings
func CreateTestChannelConfig(key entities.ChannelKey, languages ...string) *entities.ChannelConfig {
	if len(languages) == 0 {
		languages = []string{"en", "ja"}
	}
	return entities.NewChannelConfig(key, languages)
}
