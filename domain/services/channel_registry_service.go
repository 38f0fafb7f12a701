package services

import (
	"context"
	"fmt"

	"relaybot/domain/entities"
	"relaybot/domain/interfaces"
	"relaybot/events"

	log "github.com/sirupsen/logrus"
)

// channelRegistryService implements the ChannelRegistryService interface
type channelRegistryService struct {
	channelRepo    interfaces.ChannelConfigRepository
	eventPublisher interfaces.EventPublisher
	locks          *channelLocks
}

// NewChannelRegistryService creates a new channel registry service
func NewChannelRegistryService(
	channelRepo interfaces.ChannelConfigRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.ChannelRegistryService {
	return &channelRegistryService{
		channelRepo:    channelRepo,
		eventPublisher: eventPublisher,
		locks:          newChannelLocks(),
	}
}

// Enable configures translation for a channel.
// An existing configuration keeps its settings and only has its language list replaced.
func (s *channelRegistryService) Enable(ctx context.Context, key entities.ChannelKey, rawCodes string) (*entities.ChannelConfig, error) {
	codes := entities.ParseLanguageCodes(rawCodes)
	if len(codes) < entities.MinChannelLanguages {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLanguages, len(codes))
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	existing, err := s.channelRepo.GetChannelConfig(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel config: %w", err)
	}

	config := entities.NewChannelConfig(key, codes)
	if existing != nil {
		config.Settings = existing.Settings
	}

	if err := s.channelRepo.SaveChannelConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save channel config: %w", err)
	}

	log.WithFields(log.Fields{
		"guildID":   key.GuildID,
		"channelID": key.ChannelID,
		"languages": codes,
		"replaced":  existing != nil,
	}).Info("Translation enabled for channel")

	s.publish(events.ChannelEnabledEvent{
		GuildID:   key.GuildID,
		ChannelID: key.ChannelID,
		Languages: append([]string(nil), codes...),
		Replaced:  existing != nil,
	})

	return config, nil
}

// IsConfigured reports whether the channel has a translation configuration
func (s *channelRegistryService) IsConfigured(ctx context.Context, key entities.ChannelKey) (bool, error) {
	config, err := s.channelRepo.GetChannelConfig(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to get channel config: %w", err)
	}
	return config != nil, nil
}

// Disable removes the channel's languages and settings
func (s *channelRegistryService) Disable(ctx context.Context, key entities.ChannelKey) error {
	unlock := s.locks.Lock(key)
	defer unlock()

	existing, err := s.channelRepo.GetChannelConfig(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to get channel config: %w", err)
	}
	if existing == nil {
		return ErrChannelNotConfigured
	}

	deleted, err := s.channelRepo.DeleteChannelConfig(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to delete channel config: %w", err)
	}
	if !deleted {
		return ErrChannelNotConfigured
	}

	log.WithFields(log.Fields{
		"guildID":   key.GuildID,
		"channelID": key.ChannelID,
	}).Info("Translation disabled for channel")

	s.publish(events.ChannelDisabledEvent{
		GuildID:   key.GuildID,
		ChannelID: key.ChannelID,
	})

	return nil
}

// GetConfig returns the channel configuration, or nil when not configured
func (s *channelRegistryService) GetConfig(ctx context.Context, key entities.ChannelKey) (*entities.ChannelConfig, error) {
	config, err := s.channelRepo.GetChannelConfig(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel config: %w", err)
	}
	return config, nil
}

// ListConfigs returns every configured channel ordered by guild then channel
func (s *channelRegistryService) ListConfigs(ctx context.Context) ([]*entities.ChannelConfig, error) {
	configs, err := s.channelRepo.ListChannelConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel configs: %w", err)
	}
	return configs, nil
}

// UpdateSettings applies advanced settings input; any invalid field rejects the whole update
func (s *channelRegistryService) UpdateSettings(ctx context.Context, key entities.ChannelKey, input entities.SettingsInput) (*entities.Settings, error) {
	return s.mutateSettings(ctx, key, func(current entities.Settings) (entities.Settings, error) {
		updated, err := input.ApplyTo(current)
		if err != nil {
			return current, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		return updated, nil
	})
}

// Toggle flips a boolean setting and returns the updated settings
func (s *channelRegistryService) Toggle(ctx context.Context, key entities.ChannelKey, field entities.SettingsField) (*entities.Settings, error) {
	return s.mutateSettings(ctx, key, func(current entities.Settings) (entities.Settings, error) {
		if err := current.Toggle(field); err != nil {
			return current, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		return current, nil
	})
}

// mutateSettings loads, changes and saves a channel's settings under the channel lock
func (s *channelRegistryService) mutateSettings(
	ctx context.Context,
	key entities.ChannelKey,
	mutate func(entities.Settings) (entities.Settings, error),
) (*entities.Settings, error) {
	unlock := s.locks.Lock(key)
	defer unlock()

	config, err := s.channelRepo.GetChannelConfig(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel config: %w", err)
	}
	if config == nil {
		return nil, ErrChannelNotConfigured
	}

	updated, err := mutate(config.Settings)
	if err != nil {
		return nil, err
	}
	config.Settings = updated

	if err := s.channelRepo.SaveChannelConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save channel settings: %w", err)
	}

	s.publish(events.ChannelSettingsUpdatedEvent{
		GuildID:           key.GuildID,
		ChannelID:         key.ChannelID,
		AutoDelete:        updated.AutoDelete,
		AutoDeleteSeconds: updated.AutoDeleteSeconds,
		ShowFlags:         updated.ShowFlags,
	})

	return &updated, nil
}

func (s *channelRegistryService) publish(event events.Event) {
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Error("Failed to publish channel event")
	}
}
