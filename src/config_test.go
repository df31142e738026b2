package src

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-test")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "groq", config.AgentConfig.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", config.AgentConfig.Model)
	assert.Equal(t, "gsk-test", config.AgentConfig.APIKey)
	assert.Equal(t, 60*time.Second, config.AgentConfig.Timeout)
	assert.Equal(t, "https://en.wikipedia.org/api/rest_v1", config.LookupConfig.BaseURL)
	assert.Equal(t, 15*time.Second, config.LookupConfig.Timeout)
	assert.Equal(t, time.Hour, config.StoreConfig.CheckpointTTL)
	assert.Equal(t, ":8501", config.ServerConfig.Addr)
	assert.Equal(t, "info", config.LogConfig.Level)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("LLM_API_KEY", "sk-other")
	t.Setenv("LLM_PROVIDER", " Ollama ")
	t.Setenv("GROQ_MODEL", "llama3.2")
	t.Setenv("LOOKUP_TIMEOUT", "3s")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "ollama", config.AgentConfig.Provider)
	assert.Equal(t, "llama3.2", config.AgentConfig.Model)
	assert.Equal(t, "sk-other", config.AgentConfig.APIKey)
	assert.Equal(t, 3*time.Second, config.LookupConfig.Timeout)
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "carrier-pigeon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "carrier-pigeon")
}
