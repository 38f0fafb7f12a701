package channels

import (
	"context"
	"errors"

	"relaybot/bot/common"
	"relaybot/domain/interfaces"
	"relaybot/domain/languages"
	"relaybot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature enables and disables translation for a channel
type Feature struct {
	registry interfaces.ChannelRegistryService
	flags    *languages.FlagTable
}

// NewFeature creates a new channels feature instance
func NewFeature(registry interfaces.ChannelRegistryService, flags *languages.FlagTable) *Feature {
	return &Feature{
		registry: registry,
		flags:    flags,
	}
}

// HandleStartCommand opens the language modal
func (f *Feature) HandleStartCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if _, ok := common.ChannelKeyFor(i); !ok {
		common.RespondWithError(s, i, common.GuildOnlyMessage)
		return
	}

	if err := common.RespondWithModal(s, i, buildEnableModal()); err != nil {
		log.WithError(err).Error("Failed to open enable modal")
	}
}

// HandleRemoveCommand asks for confirmation before disabling the channel
func (f *Feature) HandleRemoveCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	key, ok := common.ChannelKeyFor(i)
	if !ok {
		common.RespondWithError(s, i, common.GuildOnlyMessage)
		return
	}

	configured, err := f.registry.IsConfigured(context.Background(), key)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to check channel configuration"), false)
		return
	}
	if !configured {
		common.RespondWithError(s, i, NothingToDisable)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    ConfirmRemovePrompt,
			Components: buildConfirmRemoveComponents(),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to send removal confirmation")
	}
}

// HandleInteraction handles the enable modal and the removal button
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == EnableModalID {
			f.handleEnableSubmit(s, i)
			return
		}
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == ConfirmRemoveID {
			f.handleConfirmRemove(s, i)
			return
		}
	}

	log.Warnf("Unknown channels interaction: %s", common.InteractionName(i))
	common.RespondWithError(s, i, "Unknown interaction")
}

func (f *Feature) handleEnableSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	key, ok := common.ChannelKeyFor(i)
	if !ok {
		common.RespondWithError(s, i, common.GuildOnlyMessage)
		return
	}

	values := common.ModalValues(i.ModalSubmitData())
	config, err := f.registry.Enable(context.Background(), key, values[LanguagesInput])
	if errors.Is(err, services.ErrTooFewLanguages) {
		common.RespondWithError(s, i, TooFewCodesMessage)
		return
	}
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to enable translation"), false)
		return
	}

	if err := common.RespondWithEmbed(s, i, buildEnabledEmbed(config, f.flags), nil); err != nil {
		log.WithError(err).Error("Failed to send enabled confirmation")
	}
}

func (f *Feature) handleConfirmRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	key, ok := common.ChannelKeyFor(i)
	if !ok {
		common.RespondWithError(s, i, common.GuildOnlyMessage)
		return
	}

	content := DisabledMessage
	err := f.registry.Disable(context.Background(), key)
	switch {
	case errors.Is(err, services.ErrChannelNotConfigured):
		// Disabled by someone else since the prompt was shown
		content = common.ErrorContent(NothingToDisable)
	case err != nil:
		common.HandleError(s, i, common.NewSystemError(err, "Failed to disable translation"), false)
		return
	}

	err = common.UpdateComponentMessage(s, i, &discordgo.InteractionResponseData{
		Content:    content,
		Components: []discordgo.MessageComponent{},
	})
	if err != nil {
		log.WithError(err).Error("Failed to update removal confirmation")
	}
}
