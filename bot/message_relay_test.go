package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"relaybot/domain/entities"
	"relaybot/domain/services"
	"relaybot/domain/testhelpers"
	"relaybot/events"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type relayFixture struct {
	session   *fakeSession
	relay     *testhelpers.MockRelayService
	publisher *testhelpers.MockEventPublisher
	webhooks  *WebhookCache
	deletions *DeletionScheduler
	handler   *MessageRelay
}

func newRelayFixture(t *testing.T) *relayFixture {
	t.Helper()
	f := &relayFixture{
		session:   newFakeSession(),
		relay:     new(testhelpers.MockRelayService),
		publisher: new(testhelpers.MockEventPublisher),
	}
	f.webhooks = NewWebhookCache(f.session)
	f.deletions = NewDeletionScheduler(f.session)
	f.handler = NewMessageRelay(f.session, f.relay, f.webhooks, f.deletions, f.publisher, nil)
	t.Cleanup(f.deletions.Close)
	return f
}

func guildMessage(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "m1",
		GuildID:   "g",
		ChannelID: "c",
		Content:   content,
		Author:    &discordgo.User{ID: "u1", Username: "alice_01", GlobalName: "Alice"},
	}
}

func testPlan(settings entities.Settings) *entities.RelayPlan {
	return &entities.RelayPlan{
		Source:   "en",
		Lines:    []string{"🇯🇵 **JA:** こんにちは", "🇩🇪 **DE:** Hallo"},
		Settings: settings,
	}
}

var relayKey = entities.ChannelKey{GuildID: "g", ChannelID: "c"}

func TestMessageRelay_IgnoresBotsWebhooksAndEmptyMessages(t *testing.T) {
	tests := []struct {
		name    string
		message *discordgo.Message
	}{
		{"bot author", &discordgo.Message{GuildID: "g", Content: "hi", Author: &discordgo.User{ID: "b", Bot: true}}},
		{"webhook message", &discordgo.Message{GuildID: "g", Content: "hi", WebhookID: "wh", Author: &discordgo.User{ID: "w"}}},
		{"no author", &discordgo.Message{GuildID: "g", Content: "hi"}},
		{"blank content", &discordgo.Message{GuildID: "g", Content: "   ", Author: &discordgo.User{ID: "u"}}},
		{"attachment only", &discordgo.Message{Content: "", Author: &discordgo.User{ID: "u"}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newRelayFixture(t)

			f.handler.Handle(context.Background(), tt.message)

			f.relay.AssertNotCalled(t, "Prepare", mock.Anything, mock.Anything)
			f.relay.AssertNotCalled(t, "TranslateDirect", mock.Anything, mock.Anything)
			assert.Empty(t, f.session.executed)
			assert.Empty(t, f.session.replies)
		})
	}
}

func TestMessageRelay_PostsThroughWebhook(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()
	msg := guildMessage("Hello")

	f.relay.On("Prepare", ctx, entities.RelayRequest{Key: relayKey, Content: "Hello"}).Return(testPlan(entities.DefaultSettings()), nil)
	f.publisher.On("Publish", mock.MatchedBy(func(e events.MessageRelayedEvent) bool {
		return e.MessageID == "m1" && e.SourceLanguage == "en" && e.TranslationCount == 2 && e.ViaWebhook
	})).Return(nil)

	f.handler.Handle(ctx, msg)

	require.Len(t, f.session.executed, 1)
	params := f.session.executed[0]
	assert.Equal(t, "Alice (Translated)", params.Username)
	assert.Equal(t, "🇯🇵 **JA:** こんにちは\n🇩🇪 **DE:** Hallo", params.Content)
	assert.NotNil(t, params.AllowedMentions)
	assert.Empty(t, f.session.embeds)
	assert.Equal(t, 0, f.deletions.Pending())
	f.relay.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestMessageRelay_FallsBackToEmbed(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()
	f.session.executeErr = errors.New("unknown webhook")

	settings := entities.DefaultSettings()
	settings.EmbedColor = 0x00ff00
	f.relay.On("Prepare", ctx, mock.Anything).Return(testPlan(settings), nil)
	f.publisher.On("Publish", mock.MatchedBy(func(e events.MessageRelayedEvent) bool {
		return !e.ViaWebhook
	})).Return(nil)

	f.handler.Handle(ctx, guildMessage("Hello"))

	require.Len(t, f.session.embeds, 1)
	embed := f.session.embeds[0]
	assert.Equal(t, "Translations for Alice", embed.Title)
	assert.Equal(t, 0x00ff00, embed.Color)
	assert.Contains(t, embed.Description, "**DE:** Hallo")
	assert.Equal(t, 0, f.webhooks.Len(), "a failing webhook is dropped from the cache")
	f.publisher.AssertExpectations(t)
}

func TestMessageRelay_DeliveryFailureIsDropped(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()
	f.session.listErr = errors.New("missing permissions")
	f.session.embedErr = errors.New("missing permissions")

	f.relay.On("Prepare", ctx, mock.Anything).Return(testPlan(entities.DefaultSettings()), nil)

	f.handler.Handle(ctx, guildMessage("Hello"))

	f.publisher.AssertNotCalled(t, "Publish", mock.Anything)
	assert.Empty(t, f.session.embeds)
}

func TestMessageRelay_SchedulesAutoDelete(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()

	settings := entities.DefaultSettings()
	settings.AutoDelete = true
	settings.AutoDeleteSeconds = 0
	f.relay.On("Prepare", ctx, mock.Anything).Return(testPlan(settings), nil)
	f.publisher.On("Publish", mock.Anything).Return(nil)

	f.handler.Handle(ctx, guildMessage("Hello"))

	assert.Eventually(t, func() bool {
		return len(f.session.deletedMessages()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"posted-1"}, f.session.deletedMessages())
}

func TestMessageRelay_NothingToPost(t *testing.T) {
	tests := []struct {
		name string
		plan *entities.RelayPlan
		err  error
	}{
		{"channel not configured", nil, nil},
		{"source is the only language", &entities.RelayPlan{Source: "en", Settings: entities.DefaultSettings()}, nil},
		{"translation failed", nil, fmt.Errorf("%w: quota", services.ErrTranslationFailed)},
		{"store failed", nil, errors.New("disk full")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newRelayFixture(t)
			ctx := context.Background()
			f.relay.On("Prepare", ctx, mock.Anything).Return(tt.plan, tt.err)

			f.handler.Handle(ctx, guildMessage("Hello"))

			assert.Empty(t, f.session.executed)
			assert.Empty(t, f.session.embeds)
			assert.Equal(t, 0, f.session.listCalls)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything)
		})
	}
}

func TestMessageRelay_DirectMessage(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()
	msg := &discordgo.Message{ID: "dm1", ChannelID: "dm", Content: "Hola", Author: &discordgo.User{ID: "u1"}}

	f.relay.On("TranslateDirect", ctx, "Hola").Return("es", "Hello", nil)

	f.handler.Handle(ctx, msg)

	assert.Equal(t, []string{"Detected `es` → English:\nHello"}, f.session.replies)
	f.relay.AssertNotCalled(t, "Prepare", mock.Anything, mock.Anything)
}

func TestMessageRelay_DirectMessageTranslationError(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()
	msg := &discordgo.Message{ID: "dm1", ChannelID: "dm", Content: "Hola", Author: &discordgo.User{ID: "u1"}}

	f.relay.On("TranslateDirect", ctx, "Hola").Return("", "", errors.New("backend down"))

	f.handler.Handle(ctx, msg)

	assert.Empty(t, f.session.replies)
}
