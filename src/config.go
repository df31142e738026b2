package src

import (
	"edusync/src/model"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

var knownProviders = map[string]bool{
	"groq":       true,
	"openai":     true,
	"openrouter": true,
	"ollama":     true,
	"deepseek":   true,
	"ark":        true,
	"anthropic":  true,
}

type Config struct {
	LogConfig    model.LogConfig    `envconfig:""`
	AgentConfig  model.AgentConfig  `envconfig:""`
	LookupConfig model.LookupConfig `envconfig:""`
	StoreConfig  model.StoreConfig  `envconfig:""`
	ServerConfig model.ServerConfig `envconfig:""`
}

func LoadConfig() (*Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}

	// LLM_API_KEY is accepted for providers other than Groq
	if config.AgentConfig.APIKey == "" {
		config.AgentConfig.APIKey = os.Getenv("LLM_API_KEY")
	}

	config.AgentConfig.Provider = strings.ToLower(strings.TrimSpace(config.AgentConfig.Provider))
	if !knownProviders[config.AgentConfig.Provider] {
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", config.AgentConfig.Provider)
	}

	return &config, nil
}
