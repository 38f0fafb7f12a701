package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.False(t, s.AutoDelete)
	assert.Equal(t, 30, s.AutoDeleteSeconds)
	assert.True(t, s.ShowFlags)
	assert.Equal(t, 0x3498db, s.EmbedColor)
	assert.Equal(t, 1500, s.MaxTranslationLength)
}

func TestSettings_Toggle(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.Toggle(SettingsFieldAutoDelete))
	assert.True(t, s.AutoDelete)

	require.NoError(t, s.Toggle(SettingsFieldShowFlags))
	assert.False(t, s.ShowFlags)

	err := s.Toggle(SettingsField("embed_color"))
	assert.ErrorIs(t, err, ErrUnknownSettingsField)
}

func TestSettingsInput_ApplyTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    SettingsInput
		expected Settings
		wantErr  bool
	}{
		{
			name:  "all fields valid",
			input: SettingsInput{EmbedColor: "#ff0000", MaxTranslationLength: "200", AutoDeleteSeconds: "0"},
			expected: Settings{
				AutoDelete: false, AutoDeleteSeconds: 0, ShowFlags: true,
				EmbedColor: 0xff0000, MaxTranslationLength: 200,
			},
		},
		{
			name:     "empty fields unchanged",
			input:    SettingsInput{MaxTranslationLength: " 42 "},
			expected: Settings{AutoDeleteSeconds: 30, ShowFlags: true, EmbedColor: 0x3498db, MaxTranslationLength: 42},
		},
		{
			name:    "bad color rejects everything",
			input:   SettingsInput{EmbedColor: "#zzzzzz", MaxTranslationLength: "10", AutoDeleteSeconds: "5"},
			wantErr: true,
		},
		{
			name:    "bad length rejects everything",
			input:   SettingsInput{EmbedColor: "#000000", MaxTranslationLength: "ten"},
			wantErr: true,
		},
		{
			name:    "zero length rejected",
			input:   SettingsInput{MaxTranslationLength: "0"},
			wantErr: true,
		},
		{
			name:    "negative delay rejected",
			input:   SettingsInput{AutoDeleteSeconds: "-1"},
			wantErr: true,
		},
		{
			name:    "color out of range",
			input:   SettingsInput{EmbedColor: "1000000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			current := DefaultSettings()
			got, err := tt.input.ApplyTo(current)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, current, got, "rejected input must return the current settings")
				assert.Equal(t, DefaultSettings(), current)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseHexColor(t *testing.T) {
	for _, raw := range []string{"#3498db", "3498db", "0x3498DB", " #3498DB "} {
		color, err := ParseHexColor(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, 0x3498db, color, raw)
	}

	assert.Equal(t, "#3498db", FormatHexColor(0x3498db))
	assert.Equal(t, "#000001", FormatHexColor(1))
}
