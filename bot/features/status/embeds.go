package status

import (
	"fmt"
	"strings"

	"relaybot/bot/common"
	"relaybot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// buildStatusEmbed renders the channel languages, the user's language and the counters
func buildStatusEmbed(status *entities.Status) *discordgo.MessageEmbed {
	channelLangs := "<none>"
	if len(status.Languages) > 0 {
		channelLangs = strings.Join(status.Languages, ", ")
	}
	userLang := "<not set>"
	if status.UserLanguage != "" {
		userLang = status.UserLanguage
	}
	counts := fmt.Sprintf("%s in this channel / %s total",
		common.FormatCount(status.Stats.Channel),
		common.FormatCount(status.Stats.Overall))

	return &discordgo.MessageEmbed{
		Title: "📊 Status",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Channel Langs", Value: channelLangs, Inline: false},
			{Name: "Your Lang", Value: userLang, Inline: true},
			{Name: "Messages Translated", Value: counts, Inline: true},
		},
	}
}
