package settings

import (
	"strconv"

	"relaybot/bot/common"
	"relaybot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Custom IDs owned by this feature; all start with Prefix
const (
	Prefix             = "settings_"
	EditButtonID       = "settings_edit"
	ToggleAutoDeleteID = "settings_toggle_auto_delete"
	ToggleFlagsID      = "settings_toggle_show_flags"
	ModalID            = "settings_modal"
	EmbedColorInput    = "settings_embed_color"
	MaxLengthInput     = "settings_max_length"
	AutoDeleteInput    = "settings_auto_delete_seconds"
)

// User-facing messages
const (
	NotConfiguredMessage = "Please run `/start` first."
	UpdatedMessage       = "✅ Settings updated."
	InvalidInputMessage  = "Invalid input."
)

// toggleFields maps toggle buttons to the setting they flip
var toggleFields = map[string]entities.SettingsField{
	ToggleAutoDeleteID: entities.SettingsFieldAutoDelete,
	ToggleFlagsID:      entities.SettingsFieldShowFlags,
}

// buildSettingsEmbed shows every setting as an inline field, colored with the channel's embed color
func buildSettingsEmbed(settings entities.Settings) *discordgo.MessageEmbed {
	field := func(key, value string) *discordgo.MessageEmbedField {
		return &discordgo.MessageEmbedField{Name: common.FormatFieldName(key), Value: value, Inline: true}
	}

	return &discordgo.MessageEmbed{
		Title: "⚙️ Settings",
		Color: settings.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			field("auto_delete", common.FormatOnOff(settings.AutoDelete)),
			field("auto_delete_seconds", strconv.Itoa(settings.AutoDeleteSeconds)),
			field("show_flags", common.FormatOnOff(settings.ShowFlags)),
			field("embed_color", entities.FormatHexColor(settings.EmbedColor)),
			field("max_translation_length", strconv.Itoa(settings.MaxTranslationLength)),
		},
	}
}

// buildSettingsComponents creates the edit and toggle buttons
func buildSettingsComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Edit Advanced",
					Style:    discordgo.PrimaryButton,
					CustomID: EditButtonID,
				},
				discordgo.Button{
					Label:    "Toggle Auto-delete",
					Style:    discordgo.SecondaryButton,
					CustomID: ToggleAutoDeleteID,
				},
				discordgo.Button{
					Label:    "Toggle Flags",
					Style:    discordgo.SecondaryButton,
					CustomID: ToggleFlagsID,
				},
			},
		},
	}
}

// buildSettingsModal creates the advanced settings form prefilled with the current values
func buildSettingsModal(settings entities.Settings) *discordgo.InteractionResponseData {
	input := func(id, label, value string, maxLength int) discordgo.MessageComponent {
		return discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  id,
					Label:     label,
					Style:     discordgo.TextInputShort,
					Value:     value,
					Required:  true,
					MaxLength: maxLength,
				},
			},
		}
	}

	return &discordgo.InteractionResponseData{
		CustomID: ModalID,
		Title:    "Edit Settings",
		Components: []discordgo.MessageComponent{
			input(EmbedColorInput, "Embed Color (#hex)", entities.FormatHexColor(settings.EmbedColor), 9),
			input(MaxLengthInput, "Max translation length", strconv.Itoa(settings.MaxTranslationLength), 6),
			input(AutoDeleteInput, "Auto-delete after (sec)", strconv.Itoa(settings.AutoDeleteSeconds), 6),
		},
	}
}

// settingsInputFrom reads the advanced settings form
func settingsInputFrom(data discordgo.ModalSubmitInteractionData) entities.SettingsInput {
	values := common.ModalValues(data)
	return entities.SettingsInput{
		EmbedColor:           values[EmbedColorInput],
		MaxTranslationLength: values[MaxLengthInput],
		AutoDeleteSeconds:    values[AutoDeleteInput],
	}
}
