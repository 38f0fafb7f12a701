package services

import (
	"context"
	"fmt"
	"strings"

	"relaybot/domain/entities"
	"relaybot/domain/interfaces"

	"golang.org/x/text/language"
)

// translationService implements the TranslationService interface
type translationService struct {
	translator interfaces.Translator
}

// NewTranslationService creates a new translation service
func NewTranslationService(translator interfaces.Translator) interfaces.TranslationService {
	return &translationService{
		translator: translator,
	}
}

// TranslateText detects the language of text and translates it into target
func (s *translationService) TranslateText(ctx context.Context, text, target string) (*entities.AdHocTranslation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	target = strings.TrimSpace(target)
	if _, err := language.Parse(target); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, target)
	}

	source, err := s.translator.DetectLanguage(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to detect language: %w", err)
	}
	source = entities.NormalizeLanguageCode(source)

	translated, err := s.translator.Translate(ctx, text, source, target)
	if err != nil {
		return nil, fmt.Errorf("failed to translate text: %w", err)
	}

	return &entities.AdHocTranslation{
		Source: source,
		Target: target,
		Text:   translated,
	}, nil
}
