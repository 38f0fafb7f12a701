package channels

import (
	"fmt"

	"relaybot/bot/common"
	"relaybot/domain/entities"
	"relaybot/domain/languages"

	"github.com/bwmarrin/discordgo"
)

// Custom IDs owned by this feature; all start with Prefix
const (
	Prefix          = "channels_"
	EnableModalID   = "channels_enable_modal"
	LanguagesInput  = "channels_languages"
	ConfirmRemoveID = "channels_remove_confirm"
)

// User-facing messages
const (
	TooFewCodesMessage  = "Enter at least two codes."
	NothingToDisable    = "Nothing to disable."
	DisabledMessage     = "✅ Translations disabled."
	ConfirmRemovePrompt = "Disable translation in this channel? Pending auto-deletes are cancelled."
)

// buildEnableModal creates the modal asking for the channel's language codes
func buildEnableModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: EnableModalID,
		Title:    "Enable Translation",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    LanguagesInput,
						Label:       "Language codes (comma-separated)",
						Style:       discordgo.TextInputShort,
						Placeholder: "en, ja, de",
						Required:    true,
						MaxLength:   200,
					},
				},
			},
		},
	}
}

// buildEnabledEmbed confirms the configured languages
func buildEnabledEmbed(config *entities.ChannelConfig, flags *languages.FlagTable) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Enabled",
		Description: fmt.Sprintf("Languages: %s", common.FormatLanguageList(config.Languages, flags)),
		Color:       common.ColorSuccess,
	}
}

// buildConfirmRemoveComponents creates the danger button that confirms removal
func buildConfirmRemoveComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirm Removal",
					Style:    discordgo.DangerButton,
					CustomID: ConfirmRemoveID,
				},
			},
		},
	}
}
