package entities

import (
	"fmt"
	"strings"
)

// MinChannelLanguages is the minimum number of distinct languages a translation channel needs
const MinChannelLanguages = 2

// ChannelKey identifies a channel within a guild
type ChannelKey struct {
	GuildID   string
	ChannelID string
}

// StatsKey returns the per-channel counter key ("guildId-channelId")
func (k ChannelKey) StatsKey() string {
	return fmt.Sprintf("%s-%s", k.GuildID, k.ChannelID)
}

// String implements fmt.Stringer for logging
func (k ChannelKey) String() string {
	return k.StatsKey()
}

// ChannelConfig is the translation configuration of a single channel
type ChannelConfig struct {
	Key       ChannelKey
	Languages []string // Ordered, unique, lower-case target language codes
	Settings  Settings
}

// NewChannelConfig creates a channel configuration with default settings
func NewChannelConfig(key ChannelKey, languages []string) *ChannelConfig {
	return &ChannelConfig{
		Key:       key,
		Languages: append([]string(nil), languages...),
		Settings:  DefaultSettings(),
	}
}

// ParseLanguageCodes splits a comma-separated list of language codes.
// Codes are trimmed and lower-cased; empty entries and duplicates are dropped
// while the first-seen order is kept.
func ParseLanguageCodes(raw string) []string {
	return NormalizeLanguageCodes(strings.Split(raw, ","))
}

// NormalizeLanguageCodes trims, lower-cases and de-duplicates codes, preserving order
func NormalizeLanguageCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		code = NormalizeLanguageCode(code)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		normalized = append(normalized, code)
	}
	return normalized
}

// NormalizeLanguageCode trims and lower-cases a single language code
func NormalizeLanguageCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
