package settings

import (
	"relaybot/bot/common"
	"relaybot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature shows and edits a channel's relay settings
type Feature struct {
	registry interfaces.ChannelRegistryService
}

// NewFeature creates a new settings feature instance
func NewFeature(registry interfaces.ChannelRegistryService) *Feature {
	return &Feature{registry: registry}
}

// HandleInteraction routes settings buttons and the advanced settings modal
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		if customID == EditButtonID {
			f.handleEditButton(s, i)
			return
		}
		if field, ok := toggleFields[customID]; ok {
			f.handleToggle(s, i, field)
			return
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == ModalID {
			f.handleModalSubmit(s, i)
			return
		}
	}

	log.Warnf("Unknown settings interaction: %s", common.InteractionName(i))
	common.RespondWithError(s, i, "Unknown interaction")
}
