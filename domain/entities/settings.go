package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Default channel settings
const (
	DefaultAutoDelete           = false
	DefaultAutoDeleteSeconds    = 30
	DefaultShowFlags            = true
	DefaultEmbedColor           = 0x3498db
	DefaultMaxTranslationLength = 1500

	MaxEmbedColor = 0xFFFFFF
)

// Settings holds per-channel relay settings.
// JSON names match the persisted document.
type Settings struct {
	AutoDelete           bool `json:"auto_delete"`
	AutoDeleteSeconds    int  `json:"auto_delete_seconds"`
	ShowFlags            bool `json:"show_flags"`
	EmbedColor           int  `json:"embed_color"`
	MaxTranslationLength int  `json:"max_translation_length"`
}

// DefaultSettings returns the settings a channel starts with
func DefaultSettings() Settings {
	return Settings{
		AutoDelete:           DefaultAutoDelete,
		AutoDeleteSeconds:    DefaultAutoDeleteSeconds,
		ShowFlags:            DefaultShowFlags,
		EmbedColor:           DefaultEmbedColor,
		MaxTranslationLength: DefaultMaxTranslationLength,
	}
}

// SettingsField names a boolean setting that can be toggled
type SettingsField string

const (
	SettingsFieldAutoDelete SettingsField = "auto_delete"
	SettingsFieldShowFlags  SettingsField = "show_flags"
)

// ErrUnknownSettingsField is returned when toggling a field that is not a boolean setting
var ErrUnknownSettingsField = errors.New("unknown settings field")

// Toggle flips the named boolean setting
func (s *Settings) Toggle(field SettingsField) error {
	switch field {
	case SettingsFieldAutoDelete:
		s.AutoDelete = !s.AutoDelete
	case SettingsFieldShowFlags:
		s.ShowFlags = !s.ShowFlags
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSettingsField, field)
	}
	return nil
}

// SettingsInput carries raw user input for the advanced settings form.
// Empty fields are left unchanged.
type SettingsInput struct {
	EmbedColor           string
	MaxTranslationLength string
	AutoDeleteSeconds    string
}

// ApplyTo parses every field and returns the updated settings.
// The receiver settings are never modified; any parse failure rejects the whole input.
func (in SettingsInput) ApplyTo(current Settings) (Settings, error) {
	updated := current

	if raw := strings.TrimSpace(in.EmbedColor); raw != "" {
		color, err := ParseHexColor(raw)
		if err != nil {
			return current, err
		}
		updated.EmbedColor = color
	}

	if raw := strings.TrimSpace(in.MaxTranslationLength); raw != "" {
		length, err := strconv.Atoi(raw)
		if err != nil {
			return current, fmt.Errorf("invalid max translation length %q: %w", raw, err)
		}
		if length <= 0 {
			return current, fmt.Errorf("max translation length must be positive, got %d", length)
		}
		updated.MaxTranslationLength = length
	}

	if raw := strings.TrimSpace(in.AutoDeleteSeconds); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return current, fmt.Errorf("invalid auto-delete delay %q: %w", raw, err)
		}
		if seconds < 0 {
			return current, fmt.Errorf("auto-delete delay cannot be negative, got %d", seconds)
		}
		updated.AutoDeleteSeconds = seconds
	}

	return updated, nil
}

// ParseHexColor parses "#3498db", "3498db" or "0x3498db" into a 24-bit RGB integer
func ParseHexColor(raw string) (int, error) {
	hex := strings.TrimSpace(raw)
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) > 2 && (hex[:2] == "0x" || hex[:2] == "0X") {
		hex = hex[2:]
	}
	value, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", raw, err)
	}
	if value < 0 || value > MaxEmbedColor {
		return 0, fmt.Errorf("color %q is outside the 24-bit range", raw)
	}
	return int(value), nil
}

// FormatHexColor renders a color as "#rrggbb"
func FormatHexColor(color int) string {
	return fmt.Sprintf("#%06x", color)
}
