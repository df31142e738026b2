package agent

import (
	"context"
	"edusync/src/model"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/ollama/ollama/api"
)

// Provider keys accepted by LLM_PROVIDER
const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderDeepSeek   = "deepseek"
	ProviderArk        = "ark"
	ProviderAnthropic  = "anthropic"
)

var defaultBaseURLs = map[string]string{
	ProviderGroq:       "https://api.groq.com/openai/v1",
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
	ProviderOllama:     "http://localhost:11434",
}

// NewChatModel creates the provider's chat model at the given temperature.
// Construction does no network I/O.
func NewChatModel(ctx context.Context, config model.AgentConfig, temperature float32) (ChatModel, error) {
	provider := config.Provider
	if provider == "" {
		provider = ProviderGroq
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURLs[provider]
	}

	switch provider {
	case ProviderGroq, ProviderOpenAI, ProviderOpenRouter:
		maxTokens := config.MaxTokens
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      config.APIKey,
			BaseURL:     baseURL,
			Model:       config.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating chat model: %w", err)
		}
		return chatModel, nil

	case ProviderOllama:
		chatModel, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   config.Model,
			Options: &api.Options{
				Temperature: temperature,
				NumPredict:  config.MaxTokens,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("error creating ollama model: %w", err)
		}
		return chatModel, nil

	case ProviderDeepSeek:
		chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:      config.APIKey,
			BaseURL:     baseURL,
			Model:       config.Model,
			MaxTokens:   config.MaxTokens,
			Temperature: temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating deepseek model: %w", err)
		}
		return chatModel, nil

	case ProviderArk:
		maxTokens := config.MaxTokens
		chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey:      config.APIKey,
			BaseURL:     baseURL,
			Model:       config.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating ark model: %w", err)
		}
		return chatModel, nil

	case ProviderAnthropic:
		return newAnthropicModel(config, baseURL, temperature), nil

	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}
