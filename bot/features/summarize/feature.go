package summarize

import (
	"context"
	"errors"

	"relaybot/bot/common"
	"relaybot/domain/interfaces"
	"relaybot/domain/services"
	"relaybot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature summarizes recent channel history for the invoking user
type Feature struct {
	summary interfaces.SummaryService
	metrics *observability.MetricsProvider
}

// NewFeature creates a new summarize feature instance
func NewFeature(summary interfaces.SummaryService, metrics *observability.MetricsProvider) *Feature {
	return &Feature{
		summary: summary,
		metrics: metrics,
	}
}

// HandleCommand handles /summarize [limit]
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	limit := common.DefaultSummaryLimit
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "limit":
			limit = int(opt.IntValue())
		}
	}
	limit = clampLimit(limit)

	if err := common.DeferResponse(s, i); err != nil {
		log.WithError(err).Error("Failed to defer summarize response")
		return
	}

	ctx := context.Background()
	messages, err := s.ChannelMessages(i.ChannelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to fetch channel history"), true)
		return
	}

	userID := common.InteractionUserID(i)
	result, err := f.summary.Summarize(ctx, userID, collectChatLines(messages))

	var summarizationErr *services.SummarizationError
	switch {
	case errors.Is(err, services.ErrNoMessages):
		common.FollowUpWithError(s, i, "No messages to summarize.")
		return
	case errors.As(err, &summarizationErr):
		f.metrics.RecordSummary(err)
		log.WithError(err).WithField("user_id", userID).Warn("Summarization failed")
		if err := common.FollowUp(s, i, formatSummarizationError(summarizationErr)); err != nil {
			log.WithError(err).Error("Failed to report summarization error")
		}
		return
	case err != nil:
		f.metrics.RecordSummary(err)
		common.HandleError(s, i, common.NewSystemError(err, "Failed to summarize conversation"), true)
		return
	}

	f.metrics.RecordSummary(nil)
	if err := common.FollowUp(s, i, formatSummary(result)); err != nil {
		log.WithError(err).Error("Failed to send summary")
	}
}
