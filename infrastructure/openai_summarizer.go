package infrastructure

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const summaryTemperature = 0.7

// ErrEmptyCompletion is returned when the model answers with no choices
var ErrEmptyCompletion = errors.New("empty completion")

// OpenAISummarizer implements the Summarizer interface with the chat completions API
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer creates a summarizer for the given API key and model
func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	return NewOpenAISummarizerWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAISummarizerWithConfig creates a summarizer from a client config (custom base URL, HTTP client)
func NewOpenAISummarizerWithConfig(cfg openai.ClientConfig, model string) *OpenAISummarizer {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAISummarizer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Summarize sends prompt as a single user message and returns the trimmed reply.
// API errors are returned unwrapped so their message reaches the user as is.
func (s *OpenAISummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
