package bot

import (
	"context"
	"fmt"
	"sync"

	"relaybot/bot/common"
	"relaybot/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// webhookAPI is the subset of the Discord session used to manage relay webhooks
type webhookAPI interface {
	ChannelWebhooks(channelID string, options ...discordgo.RequestOption) ([]*discordgo.Webhook, error)
	WebhookCreate(channelID, name, avatar string, options ...discordgo.RequestOption) (*discordgo.Webhook, error)
	WebhookDelete(webhookID string, options ...discordgo.RequestOption) error
}

// WebhookCache resolves and remembers the relay webhook of each channel.
// Concurrent lookups for the same channel share one Discord round trip.
type WebhookCache struct {
	api      webhookAPI
	mu       sync.RWMutex
	webhooks map[string]*discordgo.Webhook // channelID -> webhook
	group    singleflight.Group
}

// NewWebhookCache creates an empty cache
func NewWebhookCache(api webhookAPI) *WebhookCache {
	return &WebhookCache{
		api:      api,
		webhooks: make(map[string]*discordgo.Webhook),
	}
}

// Get returns the channel's relay webhook, reusing an existing one or creating it
func (c *WebhookCache) Get(ctx context.Context, channelID string) (*discordgo.Webhook, error) {
	c.mu.RLock()
	webhook, ok := c.webhooks[channelID]
	c.mu.RUnlock()
	if ok {
		return webhook, nil
	}

	result, err, _ := c.group.Do(channelID, func() (interface{}, error) {
		webhook, err := c.resolve(ctx, channelID)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.webhooks[channelID] = webhook
		c.mu.Unlock()
		return webhook, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*discordgo.Webhook), nil
}

// Invalidate deletes a webhook whose execution failed so the next Get creates a fresh one.
// The cache entry is dropped only while it still holds the failed webhook.
func (c *WebhookCache) Invalidate(channelID string, failed *discordgo.Webhook) {
	if failed == nil {
		return
	}

	c.mu.Lock()
	if cached, ok := c.webhooks[channelID]; ok && cached.ID == failed.ID {
		delete(c.webhooks, channelID)
	}
	c.mu.Unlock()

	if err := c.api.WebhookDelete(failed.ID); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"channel_id": channelID,
			"webhook_id": failed.ID,
		}).Warn("Failed to delete relay webhook")
	}
}

// Forget drops the cached webhook without touching Discord
func (c *WebhookCache) Forget(channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.webhooks, channelID)
}

// Subscribe forgets a channel's webhook when translation is disabled there
func (c *WebhookCache) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeChannelDisabled, func(_ context.Context, event events.Event) {
		if e, ok := event.(events.ChannelDisabledEvent); ok {
			c.Forget(e.ChannelID)
		}
	})
}

// Len returns the number of cached webhooks
func (c *WebhookCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.webhooks)
}

func (c *WebhookCache) resolve(ctx context.Context, channelID string) (*discordgo.Webhook, error) {
	existing, err := c.api.ChannelWebhooks(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks for channel %s: %w", channelID, err)
	}

	// Only webhooks this bot created carry a token
	for _, webhook := range existing {
		if webhook.Name == common.WebhookName && webhook.Token != "" {
			log.WithFields(log.Fields{
				"channel_id": channelID,
				"webhook_id": webhook.ID,
			}).Debug("Reusing relay webhook")
			return webhook, nil
		}
	}

	webhook, err := c.api.WebhookCreate(channelID, common.WebhookName, "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook for channel %s: %w", channelID, err)
	}

	log.WithFields(log.Fields{
		"channel_id": channelID,
		"webhook_id": webhook.ID,
	}).Info("Created relay webhook")
	return webhook, nil
}
