package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"relaybot/bot/common"
	"relaybot/domain/entities"
	"relaybot/domain/interfaces"
	"relaybot/domain/services"
	"relaybot/events"
	"relaybot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// relaySession is the subset of the Discord session used to post translations
type relaySession interface {
	webhookAPI
	messageDeleter
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// MessageRelay posts translations of every message in a configured channel,
// and answers direct messages with an English translation.
type MessageRelay struct {
	session   relaySession
	relay     interfaces.RelayService
	webhooks  *WebhookCache
	deletions *DeletionScheduler
	publisher interfaces.EventPublisher
	metrics   *observability.MetricsProvider
}

// NewMessageRelay creates a relay posting through session
func NewMessageRelay(
	session relaySession,
	relay interfaces.RelayService,
	webhooks *WebhookCache,
	deletions *DeletionScheduler,
	publisher interfaces.EventPublisher,
	metrics *observability.MetricsProvider,
) *MessageRelay {
	return &MessageRelay{
		session:   session,
		relay:     relay,
		webhooks:  webhooks,
		deletions: deletions,
		publisher: publisher,
		metrics:   metrics,
	}
}

// Handle processes one inbound message. Messages from bots, webhooks or with no text are ignored.
func (r *MessageRelay) Handle(ctx context.Context, m *discordgo.Message) {
	if m.Author == nil || m.Author.Bot || m.WebhookID != "" {
		return
	}
	if strings.TrimSpace(m.Content) == "" {
		return
	}

	if m.GuildID == "" {
		r.handleDirect(ctx, m)
		return
	}
	r.handleGuild(ctx, m)
}

func (r *MessageRelay) handleDirect(ctx context.Context, m *discordgo.Message) {
	source, translated, err := r.relay.TranslateDirect(ctx, m.Content)
	if err != nil {
		log.WithError(err).WithField("user_id", m.Author.ID).Error("Failed to translate direct message")
		r.metrics.RecordRelayError(observability.ErrorTypeTranslate)
		return
	}

	content := fmt.Sprintf("Detected `%s` → %s:\n%s", source, common.DirectMessageTarget, translated)
	if _, err := r.session.ChannelMessageSendReply(m.ChannelID, common.Truncate(content, common.MaxMessageLength), m.Reference()); err != nil {
		log.WithError(err).WithField("user_id", m.Author.ID).Error("Failed to reply to direct message")
		r.metrics.RecordRelayError(observability.ErrorTypeDelivery)
		return
	}
	r.metrics.RecordMessageRelayed(observability.DeliveryDirect)
}

func (r *MessageRelay) handleGuild(ctx context.Context, m *discordgo.Message) {
	key := entities.ChannelKey{GuildID: m.GuildID, ChannelID: m.ChannelID}
	logger := log.WithFields(log.Fields{
		"channel":    key.String(),
		"message_id": m.ID,
	})

	plan, err := r.relay.Prepare(ctx, entities.RelayRequest{Key: key, Content: m.Content})
	if err != nil {
		logger.WithError(err).Error("Failed to prepare translations")
		if errors.Is(err, services.ErrTranslationFailed) {
			r.metrics.RecordRelayError(observability.ErrorTypeTranslate)
		} else {
			r.metrics.RecordRelayError(observability.ErrorTypeLookup)
		}
		return
	}
	if !plan.HasTranslations() {
		return
	}

	content := strings.Join(plan.Lines, "\n")
	posted, delivery, err := r.deliver(ctx, m, plan, content)
	if err != nil {
		logger.WithError(err).Error("Failed to post translations")
		r.metrics.RecordRelayError(observability.ErrorTypeDelivery)
		return
	}
	r.metrics.RecordMessageRelayed(delivery)

	if plan.Settings.AutoDelete && posted != nil {
		r.deletions.Schedule(key, posted.ID, time.Duration(plan.Settings.AutoDeleteSeconds)*time.Second)
	}

	if err := r.publisher.Publish(events.MessageRelayedEvent{
		GuildID:          key.GuildID,
		ChannelID:        key.ChannelID,
		MessageID:        m.ID,
		SourceLanguage:   plan.Source,
		TranslationCount: len(plan.Lines),
		ViaWebhook:       delivery == observability.DeliveryWebhook,
		RelayedAt:        time.Now().UTC(),
	}); err != nil {
		logger.WithError(err).Error("Failed to publish message relayed event")
	}
}

// deliver posts through the channel webhook so translations appear under the author's name,
// falling back to an embed when the webhook cannot be used
func (r *MessageRelay) deliver(ctx context.Context, m *discordgo.Message, plan *entities.RelayPlan, content string) (*discordgo.Message, string, error) {
	name := common.MessageDisplayName(m)
	avatar := common.MessageAvatarURL(m)

	webhook, err := r.webhooks.Get(ctx, m.ChannelID)
	if err == nil {
		posted, execErr := r.session.WebhookExecute(webhook.ID, webhook.Token, true, &discordgo.WebhookParams{
			Content:         common.Truncate(content, common.MaxMessageLength),
			Username:        name + common.WebhookUsernameSuffix,
			AvatarURL:       avatar,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		})
		if execErr == nil {
			return posted, observability.DeliveryWebhook, nil
		}
		r.webhooks.Invalidate(m.ChannelID, webhook)
		err = execErr
	}

	log.WithError(err).WithField("channel_id", m.ChannelID).Warn("Webhook delivery failed, falling back to embed")
	r.metrics.RecordWebhookFallback()

	posted, err := r.session.ChannelMessageSendEmbed(m.ChannelID, buildFallbackEmbed(name, avatar, content, plan.Settings.EmbedColor))
	if err != nil {
		return nil, "", fmt.Errorf("failed to send fallback embed: %w", err)
	}
	return posted, observability.DeliveryEmbed, nil
}

// buildFallbackEmbed renders translations as an embed attributed to the author
func buildFallbackEmbed(name, avatarURL, content string, color int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Translations for %s", name),
		Description: common.Truncate(content, common.MaxEmbedDescription),
		Color:       color,
	}
	if avatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
	}
	return embed
}
