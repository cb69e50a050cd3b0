package summary

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/pkg/errors"
)

const openaiSystemPrompt = "You are an expert transcript summarizer with 20 years of experience."

type openaiProvider struct {
	model string
}

// NewOpenAIProvider summarizes through OpenAI chat models. Older completion
// models still work through the legacy endpoint fallback.
func NewOpenAIProvider(model string) Provider {
	return &openaiProvider{model: model}
}

func (p *openaiProvider) Name() string { return "openai" }

func (p *openaiProvider) Complete(ctx context.Context, prompt, apiKey string) (string, error) {
	client := openai.NewClient(apiKey)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 1000,
	})
	if err != nil {
		if isChatShapeRejected(err) {
			return p.legacyComplete(ctx, client, prompt)
		}
		return "", apperrors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.New("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// legacyComplete retries through the pre-chat completions endpoint for
// models the chat endpoint rejects.
func (p *openaiProvider) legacyComplete(ctx context.Context, client *openai.Client, prompt string) (string, error) {
	resp, err := client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:     p.model,
		Prompt:    prompt,
		MaxTokens: 1000,
	})
	if err != nil {
		return "", apperrors.Wrap(err, "legacy completion")
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.New("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Text), nil
}

func isChatShapeRejected(err error) bool {
	var apiErr *openai.APIError
	if !apperrors.As(err, &apiErr) {
		return false
	}
	if apiErr.HTTPStatusCode == 404 {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "not a chat model")
}
