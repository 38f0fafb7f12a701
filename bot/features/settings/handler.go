package settings

import (
	"context"
	"errors"

	"relaybot/bot/common"
	"relaybot/domain/entities"
	"relaybot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCommand shows the settings embed with its buttons
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	key, ok := common.ChannelKeyFor(i)
	if !ok {
		common.RespondWithError(s, i, common.GuildOnlyMessage)
		return
	}

	config, err := f.registry.GetConfig(context.Background(), key)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to load channel settings"), false)
		return
	}
	if config == nil {
		common.RespondWithError(s, i, NotConfiguredMessage)
		return
	}

	if err := common.RespondWithEmbed(s, i, buildSettingsEmbed(config.Settings), buildSettingsComponents()); err != nil {
		log.WithError(err).Error("Failed to send settings")
	}
}

func (f *Feature) handleEditButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	key, ok := common.ChannelKeyFor(i)
	if !ok {
		common.RespondWithError(s, i, common.GuildOnlyMessage)
		return
	}

	config, err := f.registry.GetConfig(context.Background(), key)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to load channel settings"), false)
		return
	}
	if config == nil {
		common.RespondWithError(s, i, NotConfiguredMessage)
		return
	}

	if err := common.RespondWithModal(s, i, buildSettingsModal(config.Settings)); err != nil {
		log.WithError(err).Error("Failed to open settings modal")
	}
}

// handleToggle flips a boolean setting and redraws the settings message in place
func (f *Feature) handleToggle(s *discordgo.Session, i *discordgo.InteractionCreate, field entities.SettingsField) {
	key, ok := common.ChannelKeyFor(i)
	if !ok {
		common.RespondWithError(s, i, common.GuildOnlyMessage)
		return
	}

	settings, err := f.registry.Toggle(context.Background(), key, field)
	if errors.Is(err, services.ErrChannelNotConfigured) {
		err = common.UpdateComponentMessage(s, i, &discordgo.InteractionResponseData{
			Content:    common.ErrorContent(NotConfiguredMessage),
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		})
		if err != nil {
			log.WithError(err).Error("Failed to update settings message")
		}
		return
	}
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to toggle setting"), false)
		return
	}

	log.WithFields(log.Fields{
		"channel": key.String(),
		"field":   field,
		"user_id": common.InteractionUserID(i),
	}).Info("Toggled channel setting")

	err = common.UpdateComponentMessage(s, i, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{buildSettingsEmbed(*settings)},
		Components: buildSettingsComponents(),
	})
	if err != nil {
		log.WithError(err).Error("Failed to update settings message")
	}
}

func (f *Feature) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	key, ok := common.ChannelKeyFor(i)
	if !ok {
		common.RespondWithError(s, i, common.GuildOnlyMessage)
		return
	}

	_, err := f.registry.UpdateSettings(context.Background(), key, settingsInputFrom(i.ModalSubmitData()))
	switch {
	case errors.Is(err, services.ErrInvalidSettings):
		common.RespondWithError(s, i, InvalidInputMessage)
		return
	case errors.Is(err, services.ErrChannelNotConfigured):
		common.RespondWithError(s, i, NotConfiguredMessage)
		return
	case err != nil:
		common.HandleError(s, i, common.NewSystemError(err, "Failed to update settings"), false)
		return
	}

	if err := common.RespondEphemeral(s, i, UpdatedMessage); err != nil {
		log.WithError(err).Error("Failed to confirm settings update")
	}
}
