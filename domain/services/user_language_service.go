package services

import (
	"context"
	"fmt"

	"relaybot/domain/entities"
	"relaybot/domain/interfaces"
)

// userLanguageService implements the UserLanguageService interface
type userLanguageService struct {
	userLanguageRepo interfaces.UserLanguageRepository
}

// NewUserLanguageService creates a new user language service
func NewUserLanguageService(userLanguageRepo interfaces.UserLanguageRepository) interfaces.UserLanguageService {
	return &userLanguageService{
		userLanguageRepo: userLanguageRepo,
	}
}

// SetLanguage stores the user's language code, lower-cased
func (s *userLanguageService) SetLanguage(ctx context.Context, userID, language string) (string, error) {
	code := entities.NormalizeLanguageCode(language)
	if code == "" {
		return "", ErrInvalidLanguage
	}

	if err := s.userLanguageRepo.SetUserLanguage(ctx, userID, code); err != nil {
		return "", fmt.Errorf("failed to set user language: %w", err)
	}
	return code, nil
}

// GetLanguage returns the user's language and whether one is set
func (s *userLanguageService) GetLanguage(ctx context.Context, userID string) (string, bool, error) {
	code, ok, err := s.userLanguageRepo.GetUserLanguage(ctx, userID)
	if err != nil {
		return "", false, fmt.Errorf("failed to get user language: %w", err)
	}
	return code, ok, nil
}

// PreferredLanguage returns the user's language, falling back to English
func (s *userLanguageService) PreferredLanguage(ctx context.Context, userID string) (string, error) {
	code, ok, err := s.GetLanguage(ctx, userID)
	if err != nil {
		return "", err
	}
	if !ok || code == "" {
		return entities.DefaultUserLanguage, nil
	}
	return code, nil
}
