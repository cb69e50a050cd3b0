package summary

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

type claudeProvider struct {
	model string
}

// NewClaudeProvider summarizes through Anthropic's Claude models.
func NewClaudeProvider(model string) Provider {
	return &claudeProvider{model: model}
}

func (p *claudeProvider) Name() string { return "claude" }

func (p *claudeProvider) Complete(ctx context.Context, prompt, apiKey string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "create message")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("claude returned no text content")
	}
	return strings.TrimSpace(sb.String()), nil
}
