package services

import (
	"context"
	"fmt"

	"relaybot/domain/entities"
	"relaybot/domain/interfaces"
)

// statusService implements the StatusService interface
type statusService struct {
	channelRepo      interfaces.ChannelConfigRepository
	userLanguageRepo interfaces.UserLanguageRepository
	statsRepo        interfaces.StatsRepository
}

// NewStatusService creates a new status service
func NewStatusService(
	channelRepo interfaces.ChannelConfigRepository,
	userLanguageRepo interfaces.UserLanguageRepository,
	statsRepo interfaces.StatsRepository,
) interfaces.StatusService {
	return &statusService{
		channelRepo:      channelRepo,
		userLanguageRepo: userLanguageRepo,
		statsRepo:        statsRepo,
	}
}

// GetStatus collects the channel's languages, the user's language and the relay counters
func (s *statusService) GetStatus(ctx context.Context, key entities.ChannelKey, userID string) (*entities.Status, error) {
	status := &entities.Status{}

	config, err := s.channelRepo.GetChannelConfig(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel config: %w", err)
	}
	if config != nil {
		status.Languages = append([]string(nil), config.Languages...)
	}

	language, ok, err := s.userLanguageRepo.GetUserLanguage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user language: %w", err)
	}
	if ok {
		status.UserLanguage = language
	}

	stats, err := s.statsRepo.GetChannelStats(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	status.Stats = *stats

	return status, nil
}
