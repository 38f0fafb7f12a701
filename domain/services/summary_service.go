package services

import (
	"context"
	"fmt"
	"strings"

	"relaybot/domain/entities"
	"relaybot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// SummaryPromptPrefix starts every summarization prompt
const SummaryPromptPrefix = "Summarize this conversation:\n\n"

// SummarizationError wraps a failure of the generative backend.
// Its message is the backend's message, unchanged.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string {
	return e.Err.Error()
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}

// summaryService implements the SummaryService interface
type summaryService struct {
	summarizer   interfaces.Summarizer
	translator   interfaces.Translator
	userLanguage interfaces.UserLanguageService
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	summarizer interfaces.Summarizer,
	translator interfaces.Translator,
	userLanguage interfaces.UserLanguageService,
) interfaces.SummaryService {
	return &summaryService{
		summarizer:   summarizer,
		translator:   translator,
		userLanguage: userLanguage,
	}
}

// Summarize summarizes lines (oldest first) and returns the summary in the user's language
func (s *summaryService) Summarize(ctx context.Context, userID string, lines []entities.ChatLine) (*entities.Summary, error) {
	if len(lines) == 0 {
		return nil, ErrNoMessages
	}

	target, err := s.userLanguage.PreferredLanguage(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarizer.Summarize(ctx, BuildSummaryPrompt(lines))
	if err != nil {
		return nil, &SummarizationError{Err: err}
	}
	summary = strings.TrimSpace(summary)

	detected, err := s.translator.DetectLanguage(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to detect summary language: %w", err)
	}

	if !strings.EqualFold(detected, target) {
		summary, err = s.translator.Translate(ctx, summary, entities.NormalizeLanguageCode(detected), target)
		if err != nil {
			return nil, fmt.Errorf("failed to translate summary: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"userID":   userID,
		"messages": len(lines),
		"language": target,
	}).Debug("Conversation summarized")

	return &entities.Summary{
		Language: target,
		Text:     summary,
	}, nil
}

// BuildConversation renders lines as "speaker: text", one per line
func BuildConversation(lines []entities.ChatLine) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line.Speaker)
		sb.WriteString(": ")
		sb.WriteString(line.Content)
	}
	return sb.String()
}

// BuildSummaryPrompt wraps the conversation in the summarization instruction
func BuildSummaryPrompt(lines []entities.ChatLine) string {
	return SummaryPromptPrefix + BuildConversation(lines)
}
