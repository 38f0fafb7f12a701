package translate

import (
	"context"
	"errors"
	"fmt"

	"relaybot/bot/common"
	"relaybot/domain/entities"
	"relaybot/domain/interfaces"
	"relaybot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature translates text on demand
type Feature struct {
	translation interfaces.TranslationService
}

// NewFeature creates a new translate feature instance
func NewFeature(translation interfaces.TranslationService) *Feature {
	return &Feature{translation: translation}
}

// HandleCommand handles /translate text to
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var text, target string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "text":
			text = opt.StringValue()
		case "to":
			target = opt.StringValue()
		}
	}

	// Translation backends can exceed the interaction deadline
	if err := common.DeferResponse(s, i); err != nil {
		log.WithError(err).Error("Failed to defer translate response")
		return
	}

	result, err := f.translation.TranslateText(context.Background(), text, target)
	switch {
	case errors.Is(err, services.ErrEmptyText):
		common.FollowUpWithError(s, i, "Please provide text to translate.")
		return
	case errors.Is(err, services.ErrInvalidLanguage):
		common.FollowUpWithError(s, i, fmt.Sprintf("Unknown language code `%s`.", target))
		return
	case err != nil:
		common.HandleError(s, i, common.NewSystemError(err, "Failed to translate text"), true)
		return
	}

	if err := common.FollowUp(s, i, formatTranslation(result)); err != nil {
		log.WithError(err).Error("Failed to send translation")
	}
}

// formatTranslation renders "`src` → `to`: text"
func formatTranslation(result *entities.AdHocTranslation) string {
	content := fmt.Sprintf("`%s` → `%s`: %s", result.Source, result.Target, result.Text)
	return common.Truncate(content, common.MaxMessageLength)
}
