package summarize

import (
	"fmt"
	"strings"

	"relaybot/bot/common"
	"relaybot/domain/entities"
	"relaybot/domain/services"

	"github.com/bwmarrin/discordgo"
)

// clampLimit keeps the history size within what one Discord request returns
func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > common.MaxFetchMessages {
		return common.MaxFetchMessages
	}
	return limit
}

// collectChatLines keeps messages written by people, oldest first.
// Discord returns history newest first.
func collectChatLines(messages []*discordgo.Message) []entities.ChatLine {
	lines := make([]entities.ChatLine, 0, len(messages))
	for idx := len(messages) - 1; idx >= 0; idx-- {
		m := messages[idx]
		if m.Author == nil || m.Author.Bot || strings.TrimSpace(m.Content) == "" {
			continue
		}
		lines = append(lines, entities.ChatLine{
			Speaker: common.MessageDisplayName(m),
			Content: m.Content,
		})
	}
	return lines
}

// formatSummary renders "📌 **Summary (lang):**\nsummary"
func formatSummary(summary *entities.Summary) string {
	content := fmt.Sprintf("📌 **Summary (%s):**\n%s", summary.Language, summary.Text)
	return common.Truncate(content, common.MaxMessageLength)
}

// formatSummarizationError reports the backend's message verbatim
func formatSummarizationError(err *services.SummarizationError) string {
	return common.Truncate(fmt.Sprintf("Summarization error: %s", err.Error()), common.MaxMessageLength)
}
