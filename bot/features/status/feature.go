package status

import (
	"context"

	"relaybot/bot/common"
	"relaybot/domain/entities"
	"relaybot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature reports a channel's translation status
type Feature struct {
	status interfaces.StatusService
}

// NewFeature creates a new status feature instance
func NewFeature(status interfaces.StatusService) *Feature {
	return &Feature{status: status}
}

// HandleCommand handles the /status command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Outside a guild the key matches no channel and only the user's language is reported
	key := entities.ChannelKey{GuildID: i.GuildID, ChannelID: i.ChannelID}

	status, err := f.status.GetStatus(context.Background(), key, common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to load status"), false)
		return
	}

	if err := common.RespondWithEmbed(s, i, buildStatusEmbed(status), nil); err != nil {
		log.WithError(err).Error("Failed to send status")
	}
}
