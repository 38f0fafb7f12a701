package services

import (
	"context"
	"fmt"
	"strings"

	"relaybot/domain/entities"
	"relaybot/domain/interfaces"
	"relaybot/domain/languages"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// directTarget is the language direct messages are translated into
const directTarget = "en"

// relayService implements the RelayService interface
type relayService struct {
	channelRepo interfaces.ChannelConfigRepository
	statsRepo   interfaces.StatsRepository
	translator  interfaces.Translator
	flags       *languages.FlagTable
}

// NewRelayService creates a new relay service
func NewRelayService(
	channelRepo interfaces.ChannelConfigRepository,
	statsRepo interfaces.StatsRepository,
	translator interfaces.Translator,
	flags *languages.FlagTable,
) interfaces.RelayService {
	return &relayService{
		channelRepo: channelRepo,
		statsRepo:   statsRepo,
		translator:  translator,
		flags:       flags,
	}
}

// Prepare runs the relay policy for one guild message.
// It returns nil when the channel is not configured. Counters are incremented as soon as
// the channel matches, even when no translation ends up being posted.
func (s *relayService) Prepare(ctx context.Context, req entities.RelayRequest) (*entities.RelayPlan, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, nil
	}

	config, err := s.channelRepo.GetChannelConfig(ctx, req.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel config: %w", err)
	}
	if config == nil {
		return nil, nil
	}

	if _, err := s.statsRepo.IncrementRelayed(ctx, req.Key); err != nil {
		return nil, fmt.Errorf("failed to increment relay counters: %w", err)
	}

	source, err := s.translator.DetectLanguage(ctx, req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to detect language: %w", ErrTranslationFailed, err)
	}
	source = entities.NormalizeLanguageCode(source)

	targets := make([]string, 0, len(config.Languages))
	for _, lang := range config.Languages {
		if !strings.EqualFold(lang, source) {
			targets = append(targets, lang)
		}
	}

	plan := &entities.RelayPlan{
		Source:   source,
		Settings: config.Settings,
	}
	if len(targets) == 0 {
		return plan, nil
	}

	text := TruncateRunes(req.Content, config.Settings.MaxTranslationLength)
	lines := make([]string, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		g.Go(func() error {
			translated, err := s.translator.Translate(gctx, text, source, target)
			if err != nil {
				return fmt.Errorf("%w: failed to translate to %s: %w", ErrTranslationFailed, target, err)
			}
			flag := ""
			if config.Settings.ShowFlags {
				flag = s.flags.Flag(target)
			}
			lines[i] = FormatLine(flag, target, translated)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan.Lines = lines

	log.WithFields(log.Fields{
		"guildID":      req.Key.GuildID,
		"channelID":    req.Key.ChannelID,
		"source":       source,
		"translations": len(lines),
	}).Debug("Prepared relay translations")

	return plan, nil
}

// TranslateDirect detects the language of a direct message and translates it into English
func (s *relayService) TranslateDirect(ctx context.Context, text string) (string, string, error) {
	source, err := s.translator.DetectLanguage(ctx, text)
	if err != nil {
		return "", "", fmt.Errorf("failed to detect language: %w", err)
	}
	translated, err := s.translator.Translate(ctx, text, "", directTarget)
	if err != nil {
		return "", "", fmt.Errorf("failed to translate direct message: %w", err)
	}
	return entities.NormalizeLanguageCode(source), translated, nil
}

// FormatLine renders one translation line as "{flag} **{LANG}:** {text}".
// The flag and its trailing space are omitted when flag is empty.
func FormatLine(flag, lang, text string) string {
	prefix := ""
	if flag != "" {
		prefix = flag + " "
	}
	return fmt.Sprintf("%s**%s:** %s", prefix, strings.ToUpper(lang), text)
}

// TruncateRunes returns at most limit runes of text
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
