package model

import "time"

// ----------------------------------------------------
// ================ Config ================

// LogConfig controls the global zerolog logger
type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	Format     string `envconfig:"LOG_FORMAT" default:"console"`
	Output     string `envconfig:"LOG_OUTPUT" default:"stderr"`
	FilePath   string `envconfig:"LOG_FILE_PATH" default:"logs/edusync.log"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"rfc3339"`
}

// AgentConfig holds the model-provider settings shared by every agent
type AgentConfig struct {
	Provider   string        `envconfig:"LLM_PROVIDER" default:"groq"`
	Model      string        `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	APIKey     string        `envconfig:"GROQ_API_KEY"`
	BaseURL    string        `envconfig:"LLM_BASE_URL"`
	MaxTokens  int           `envconfig:"LLM_MAX_TOKENS" default:"1024"`
	Timeout    time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	AgentsFile string        `envconfig:"AGENTS_FILE"`
}

// LookupConfig configures the external knowledge lookup
type LookupConfig struct {
	BaseURL   string        `envconfig:"WIKI_BASE_URL" default:"https://en.wikipedia.org/api/rest_v1"`
	Timeout   time.Duration `envconfig:"LOOKUP_TIMEOUT" default:"15s"`
	UserAgent string        `envconfig:"LOOKUP_USER_AGENT" default:"edusync-agents/1.0"`
}

// StoreConfig selects where graph checkpoints are kept
type StoreConfig struct {
	RedisURL      string        `envconfig:"REDIS_URL"`
	CheckpointTTL time.Duration `envconfig:"CHECKPOINT_TTL" default:"1h"`
}

// ServerConfig configures the browser form
type ServerConfig struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8501"`
}
