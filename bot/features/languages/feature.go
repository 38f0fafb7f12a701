package languages

import (
	"context"
	"errors"
	"fmt"

	"relaybot/bot/common"
	"relaybot/domain/interfaces"
	"relaybot/domain/languages"
	"relaybot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature manages personal language preferences and lists known codes
type Feature struct {
	userLanguages interfaces.UserLanguageService
	flags         *languages.FlagTable
}

// NewFeature creates a new languages feature instance
func NewFeature(userLanguages interfaces.UserLanguageService, flags *languages.FlagTable) *Feature {
	return &Feature{
		userLanguages: userLanguages,
		flags:         flags,
	}
}

// HandleSetLangCommand stores the invoking user's language
func (f *Feature) HandleSetLangCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var language string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "language":
			language = opt.StringValue()
		}
	}

	code, err := f.userLanguages.SetLanguage(context.Background(), common.InteractionUserID(i), language)
	if errors.Is(err, services.ErrInvalidLanguage) {
		common.RespondWithError(s, i, "Please provide a language code.")
		return
	}
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to set user language"), false)
		return
	}

	if err := common.RespondEphemeral(s, i, fmt.Sprintf("✅ Language set to %s", code)); err != nil {
		log.WithError(err).Error("Failed to confirm language change")
	}
}

// HandleListLangsCommand lists every code in the flag table
func (f *Feature) HandleListLangsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.RespondEphemeral(s, i, buildLanguageList(f.flags)); err != nil {
		log.WithError(err).Error("Failed to send language list")
	}
}
