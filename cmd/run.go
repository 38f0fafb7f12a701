package cmd

import (
	"context"
	"fmt"
	"time"

	"relaybot/bot"
	"relaybot/config"
	"relaybot/database"
	"relaybot/domain/interfaces"
	"relaybot/domain/languages"
	"relaybot/domain/services"
	"relaybot/events"
	"relaybot/infrastructure"
	"relaybot/infrastructure/observability"
	"relaybot/repository"

	log "github.com/sirupsen/logrus"
)

// shutdownTimeout bounds flushing metrics on exit
const shutdownTimeout = 10 * time.Second

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	setupLogging(cfg)

	log.WithField("environment", cfg.Environment).Info("Starting relay bot...")

	// Initialize metrics
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Error shutting down metrics provider")
		}
	}()

	// Initialize storage
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("Error closing store")
		}
	}()

	flags, err := languages.LoadFlagTable(cfg.FlagsFile)
	if err != nil {
		return fmt.Errorf("failed to load flag table: %w", err)
	}
	log.WithField("languages", flags.Len()).Info("Flag table loaded")

	// Initialize translation backends
	google, err := infrastructure.NewGoogleTranslator(ctx, cfg.GoogleAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}
	defer func() {
		if err := google.Close(); err != nil {
			log.WithError(err).Error("Error closing translator")
		}
	}()
	translator := observability.NewInstrumentedTranslator(
		infrastructure.NewRateLimitedTranslator(google, cfg.TranslateRatePerSecond, cfg.TranslateBurst),
		metrics,
	)
	summarizer := infrastructure.NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Initialize event bus and publisher
	eventBus := events.NewBus()
	defer eventBus.Wait()

	var publisher interfaces.EventPublisher = eventBus
	if cfg.NATSEnabled() {
		natsClient, err := connectNATS(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.WithError(err).Error("Error closing NATS client")
			}
		}()

		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper(), eventBus)
		natsPublisher.OnPublished(metrics.RecordNATSMessagePublished)
		publisher = natsPublisher
	}

	// Initialize services
	userLanguageService := services.NewUserLanguageService(store)
	registry := services.NewChannelRegistryService(store, publisher)
	svc := bot.Services{
		Registry:      registry,
		Relay:         services.NewRelayService(store, store, translator, flags),
		UserLanguages: userLanguageService,
		Status:        services.NewStatusService(store, store, store),
		Translation:   services.NewTranslationService(translator),
		Summary:       services.NewSummaryService(summarizer, translator, userLanguageService),
	}

	configs, err := registry.ListConfigs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load channel configs: %w", err)
	}
	for _, channel := range configs {
		log.WithFields(log.Fields{
			"channel":   channel.Key.String(),
			"languages": channel.Languages,
		}).Debug("Translation channel configured")
	}
	log.WithField("channels", len(configs)).Info("Loaded translation channels")

	// Create and start bot
	log.Info("Connecting to Discord...")
	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
	}, svc, flags, eventBus, publisher, metrics)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	log.Info("Relay bot is running. Press CTRL+C to exit.")
	<-ctx.Done()

	log.Info("Shutting down...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing bot")
	}
	return nil
}

// setupLogging applies the configured level and picks JSON output outside development
func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "development" {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

// openStore opens the configured persistence backend
func openStore(ctx context.Context, cfg *config.Config) (interfaces.Store, error) {
	if !cfg.UsesPostgres() {
		store, err := repository.NewJSONStore(cfg.DataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		log.WithField("path", cfg.DataFile).Info("Using JSON store")
		return store, nil
	}

	databaseURL := cfg.GetDatabaseURL()
	log.Info("Running database migrations...")
	if err := database.RunMigrationsWithURL(databaseURL); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")
	return repository.NewPostgresStore(db), nil
}

// connectNATS connects to NATS and makes sure the domain event stream exists
func connectNATS(ctx context.Context, cfg *config.Config) (*infrastructure.NATSClient, error) {
	log.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(connectCtx); err != nil {
		return nil, err
	}

	subjects := infrastructure.NewEventSubjectMapper().GetAllSubjects()
	if err := client.EnsureStream(infrastructure.DomainEventStream, subjects); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ensure event stream: %w", err)
	}
	return client, nil
}
