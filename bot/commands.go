package bot

import (
	"fmt"

	"relaybot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// commandDefinitions returns every slash command the bot serves
func commandDefinitions() []*discordgo.ApplicationCommand {
	var manageChannels int64 = discordgo.PermissionManageChannels
	guildOnly := false
	minLimit := 1.0

	return []*discordgo.ApplicationCommand{
		{
			Name:                     "start",
			Description:              "Enable translation in this channel",
			DefaultMemberPermissions: &manageChannels,
			DMPermission:             &guildOnly,
		},
		{
			Name:                     "remove",
			Description:              "Disable translation in this channel",
			DefaultMemberPermissions: &manageChannels,
			DMPermission:             &guildOnly,
		},
		{
			Name:        "setlang",
			Description: "Set your preferred language",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "language",
					Description: "Language code (e.g., en, ja, de)",
					Required:    true,
				},
			},
		},
		{
			Name:        "listlangs",
			Description: "List supported language codes",
		},
		{
			Name:        "status",
			Description: "Show this channel's translation status",
		},
		{
			Name:                     "settings",
			Description:              "View and edit this channel's translation settings",
			DefaultMemberPermissions: &manageChannels,
			DMPermission:             &guildOnly,
		},
		{
			Name:        "translate",
			Description: "Translate text into another language",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "Text to translate",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "to",
					Description: "Target language code (e.g., ja)",
					Required:    true,
				},
			},
		},
		{
			Name:        "summarize",
			Description: "Summarize recent messages in your language",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: fmt.Sprintf("Number of messages to read (default %d)", common.DefaultSummaryLimit),
					Required:    false,
					MinValue:    &minLimit,
					MaxValue:    common.MaxFetchMessages,
				},
			},
		},
	}
}

// registerCommands replaces the bot's slash commands, scoped to one guild when configured
func (b *Bot) registerCommands() error {
	commands := commandDefinitions()

	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, commands)
	if err != nil {
		return fmt.Errorf("cannot register commands: %w", err)
	}

	log.WithFields(log.Fields{
		"count":    len(registered),
		"guild_id": b.config.GuildID,
	}).Info("Registered slash commands")
	return nil
}
