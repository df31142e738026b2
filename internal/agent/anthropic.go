package agent

import (
	"context"
	"edusync/src/model"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// anthropicModel adapts the Anthropic Messages API to ChatModel
type anthropicModel struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

func newAnthropicModel(config model.AgentConfig, baseURL string, temperature float32) *anthropicModel {
	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	maxTokens := int64(config.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &anthropicModel{
		client:      anthropic.NewClient(opts...),
		model:       config.Model,
		maxTokens:   maxTokens,
		temperature: float64(temperature),
	}
}

// Generate sends system messages as the system prompt and the rest as turns
func (m *anthropicModel) Generate(ctx context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(m.model),
		MaxTokens:   m.maxTokens,
		Temperature: anthropic.Float(m.temperature),
	}

	for _, msg := range input {
		switch msg.Role {
		case schema.System:
			params.System = append(params.System, anthropic.TextBlockParam{Text: msg.Content})
		case schema.Assistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return schema.AssistantMessage(text.String(), nil), nil
}
