package bot

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// fakeSession records the Discord calls made by the relay
type fakeSession struct {
	mu sync.Mutex

	webhooks     map[string][]*discordgo.Webhook
	listCalls    int
	createCalls  int
	listErr      error
	createErr    error
	executeErr   error
	embedErr     error
	replyErr     error
	nextID       int
	executed     []*discordgo.WebhookParams
	embeds       []*discordgo.MessageEmbed
	replies      []string
	deleted      []string
	webhooksGone []string
	listStarted  chan struct{}
	releaseLists chan struct{}
}

func newFakeSession() *fakeSession {
	return &fakeSession{webhooks: make(map[string][]*discordgo.Webhook)}
}

func (f *fakeSession) ChannelWebhooks(channelID string, _ ...discordgo.RequestOption) ([]*discordgo.Webhook, error) {
	if f.listStarted != nil {
		f.listStarted <- struct{}{}
		<-f.releaseLists
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.webhooks[channelID], nil
}

func (f *fakeSession) WebhookCreate(channelID, name, _ string, _ ...discordgo.RequestOption) (*discordgo.Webhook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	webhook := &discordgo.Webhook{
		ID:        fmt.Sprintf("wh-%d", f.createCalls),
		ChannelID: channelID,
		Name:      name,
		Token:     "token",
	}
	f.webhooks[channelID] = append(f.webhooks[channelID], webhook)
	return webhook, nil
}

func (f *fakeSession) WebhookDelete(webhookID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.webhooksGone = append(f.webhooksGone, webhookID)
	for channelID, webhooks := range f.webhooks {
		kept := webhooks[:0]
		for _, webhook := range webhooks {
			if webhook.ID != webhookID {
				kept = append(kept, webhook)
			}
		}
		f.webhooks[channelID] = kept
	}
	return nil
}

func (f *fakeSession) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.executeErr != nil {
		return nil, f.executeErr
	}
	if !wait {
		return nil, errors.New("relay must wait for the posted message")
	}
	f.executed = append(f.executed, data)
	return f.message(), nil
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	f.embeds = append(f.embeds, embed)
	return f.message(), nil
}

func (f *fakeSession) ChannelMessageSendReply(channelID string, content string, _ *discordgo.MessageReference, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replyErr != nil {
		return nil, f.replyErr
	}
	f.replies = append(f.replies, content)
	return f.message(), nil
}

func (f *fakeSession) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeSession) deletedMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// message allocates a posted message; callers hold mu
func (f *fakeSession) message() *discordgo.Message {
	f.nextID++
	return &discordgo.Message{ID: fmt.Sprintf("posted-%d", f.nextID)}
}
