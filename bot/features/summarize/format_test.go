package summarize

import (
	"errors"
	"testing"

	"relaybot/domain/entities"
	"relaybot/domain/services"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{20, 20},
		{100, 100},
		{500, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampLimit(tt.input), "limit %d", tt.input)
	}
}

func TestCollectChatLines(t *testing.T) {
	human := func(id, name, content string) *discordgo.Message {
		return &discordgo.Message{ID: id, Content: content, Author: &discordgo.User{Username: name}}
	}

	// Newest first, as Discord returns them
	messages := []*discordgo.Message{
		human("5", "carol", "see you"),
		{ID: "4", Content: "🇯🇵 **JA:** またね", Author: &discordgo.User{Username: "relay", Bot: true}},
		human("3", "bob", "   "),
		{ID: "2", Content: "hello", Author: &discordgo.User{Username: "bob", GlobalName: "Bob"}, Member: &discordgo.Member{Nick: "Bobby"}},
		human("1", "alice", "hi all"),
	}

	lines := collectChatLines(messages)

	assert.Equal(t, []entities.ChatLine{
		{Speaker: "alice", Content: "hi all"},
		{Speaker: "Bobby", Content: "hello"},
		{Speaker: "carol", Content: "see you"},
	}, lines)
}

func TestCollectChatLines_NothingUsable(t *testing.T) {
	lines := collectChatLines([]*discordgo.Message{
		{Content: "beep", Author: &discordgo.User{Bot: true}},
		{Content: "", Author: &discordgo.User{Username: "a"}},
	})
	assert.Empty(t, lines)
}

func TestFormatSummary(t *testing.T) {
	summary := &entities.Summary{Language: "ja", Text: "要約です"}

	assert.Equal(t, "📌 **Summary (ja):**\n要約です", formatSummary(summary))
}

func TestFormatSummarizationError(t *testing.T) {
	err := &services.SummarizationError{Err: errors.New("rate limit reached for gpt-3.5-turbo")}

	assert.Equal(t, "Summarization error: rate limit reached for gpt-3.5-turbo", formatSummarizationError(err))
}
