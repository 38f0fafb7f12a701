package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"relaybot/bot/features/channels"
	"relaybot/bot/features/languages"
	"relaybot/bot/features/settings"
	"relaybot/bot/features/status"
	"relaybot/bot/features/summarize"
	"relaybot/bot/features/translate"
	"relaybot/domain/interfaces"
	flagtable "relaybot/domain/languages"
	"relaybot/events"
	"relaybot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// relayTimeout bounds the translation and delivery of one message
const relayTimeout = 30 * time.Second

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // Register commands in this guild only; global when empty
}

// Services are the domain services the bot's handlers call
type Services struct {
	Registry      interfaces.ChannelRegistryService
	Relay         interfaces.RelayService
	UserLanguages interfaces.UserLanguageService
	Status        interfaces.StatusService
	Translation   interfaces.TranslationService
	Summary       interfaces.SummaryService
}

// Bot manages the Discord session, the message relay and all feature modules
type Bot struct {
	// Core components
	config  Config
	session *discordgo.Session
	metrics *observability.MetricsProvider
	ctx     context.Context
	cancel  context.CancelFunc

	// Relay
	relay     *MessageRelay
	webhooks  *WebhookCache
	deletions *DeletionScheduler

	// Feature modules
	channels  *channels.Feature
	languages *languages.Feature
	status    *status.Feature
	settings  *settings.Feature
	translate *translate.Feature
	summarize *summarize.Feature
}

// New creates a bot, connects to Discord and registers its commands
func New(
	config Config,
	svc Services,
	flags *flagtable.FlagTable,
	bus *events.Bus,
	publisher interfaces.EventPublisher,
	metrics *observability.MetricsProvider,
) (*Bot, error) {
	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	// Handlers run on their own goroutines
	dg.SyncEvents = false

	ctx, cancel := context.WithCancel(context.Background())
	bot := &Bot{
		config:  config,
		session: dg,
		metrics: metrics,
		ctx:     ctx,
		cancel:  cancel,
	}

	// Relay components; pending deletions and cached webhooks follow channel changes
	bot.webhooks = NewWebhookCache(dg)
	bot.deletions = NewDeletionScheduler(dg)
	bot.webhooks.Subscribe(bus)
	bot.deletions.Subscribe(bus)
	bot.relay = NewMessageRelay(dg, svc.Relay, bot.webhooks, bot.deletions, publisher, metrics)

	// Create feature modules
	bot.channels = channels.NewFeature(svc.Registry, flags)
	bot.languages = languages.NewFeature(svc.UserLanguages, flags)
	bot.status = status.NewFeature(svc.Status)
	bot.settings = settings.NewFeature(svc.Registry)
	bot.translate = translate.NewFeature(svc.Translation)
	bot.summarize = summarize.NewFeature(svc.Summary, metrics)

	// Register handlers
	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)
	dg.AddHandler(bot.handleMessageCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		cancel()
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		cancel()
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close cancels pending deletions and in-flight relays, then disconnects
func (b *Bot) Close() error {
	b.cancel()
	b.deletions.Close()
	log.Info("Pending deletions cancelled")

	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Connected to Discord")
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	b.metrics.RecordCommand(name)

	switch name {
	case "start":
		b.channels.HandleStartCommand(s, i)
	case "remove":
		b.channels.HandleRemoveCommand(s, i)
	case "setlang":
		b.languages.HandleSetLangCommand(s, i)
	case "listlangs":
		b.languages.HandleListLangsCommand(s, i)
	case "status":
		b.status.HandleCommand(s, i)
	case "settings":
		b.settings.HandleCommand(s, i)
	case "translate":
		b.translate.HandleCommand(s, i)
	case "summarize":
		b.summarize.HandleCommand(s, i)
	default:
		log.Warnf("Unknown command: %s", name)
	}
}

// handleInteractions routes component and modal interactions to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var customID string
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID = i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		customID = i.ModalSubmitData().CustomID
	default:
		return
	}

	switch {
	case strings.HasPrefix(customID, channels.Prefix):
		b.channels.HandleInteraction(s, i)
	case strings.HasPrefix(customID, settings.Prefix):
		b.settings.HandleInteraction(s, i)
	default:
		log.Warnf("Unknown interaction custom ID: %s", customID)
	}
}

// handleMessageCreate relays every inbound message
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Skip messages from our own bot to avoid loops
	if m.Author == nil || (s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return
	}

	ctx, cancel := context.WithTimeout(b.ctx, relayTimeout)
	defer cancel()
	b.relay.Handle(ctx, m.Message)
}
