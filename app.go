package main

import (
	"context"
	"edusync/internal/agent"
	"edusync/internal/config"
	"edusync/internal/core"
	"edusync/internal/lookup"
	"edusync/internal/nodes"
	"edusync/src"
	"edusync/src/logger"
	"edusync/src/storage"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/joho/godotenv"
)

// application holds everything a command needs
type application struct {
	config      *src.Config
	processor   *core.SessionProcessor
	checkpoints *core.StoreCheckpointer
	store       storage.Store
	tools       []tool.InvokableTool
}

// loadEnvironment reads .env and initialises the logger
func loadEnvironment() (*src.Config, error) {
	envErr := godotenv.Load()

	cfg, err := src.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := logger.InitLogger(cfg.LogConfig); err != nil {
		return nil, fmt.Errorf("error initializing logger: %w", err)
	}
	if envErr != nil {
		logger.Debug().Err(envErr).Msg("no .env file loaded")
	}
	return cfg, nil
}

// openStore returns Redis when REDIS_URL is set and memory otherwise
func openStore(ctx context.Context, cfg *src.Config) (storage.Store, error) {
	if cfg.StoreConfig.RedisURL == "" {
		return storage.NewMemoryStorage(), nil
	}
	store, err := storage.NewRedisStorage(ctx, cfg.StoreConfig.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	logger.Info().Msg("checkpoints stored in redis")
	return store, nil
}

func newApplication(ctx context.Context) (*application, error) {
	cfg, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	presets, err := config.LoadPresets(cfg.AgentConfig.AgentsFile)
	if err != nil {
		return nil, fmt.Errorf("error loading agent presets: %w", err)
	}
	agents, err := agent.NewSet(ctx, cfg.AgentConfig, presets)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	checkpoints := core.NewStoreCheckpointer(store, cfg.StoreConfig.CheckpointTTL)

	wikipedia := lookup.NewWikipedia(cfg.LookupConfig)
	summaryTool, err := lookup.NewSummaryTool(wikipedia)
	if err != nil {
		store.Close()
		return nil, err
	}

	processor := core.NewSessionProcessor(checkpoints)
	stages := []core.Node{
		nodes.NewResearchNode(agents.Research, wikipedia),
		nodes.NewQuizNode(agents.Quiz),
		nodes.NewExplainNode(agents.Explain),
	}
	for _, stage := range stages {
		if err := processor.AddNode(stage); err != nil {
			store.Close()
			return nil, err
		}
	}

	logger.Debug().
		Str("provider", cfg.AgentConfig.Provider).
		Str("model", cfg.AgentConfig.Model).
		Msg("application ready")

	return &application{
		config:      cfg,
		processor:   processor,
		checkpoints: checkpoints,
		store:       store,
		tools:       []tool.InvokableTool{summaryTool},
	}, nil
}

// healthCheck pings Redis when checkpoints live there
func (a *application) healthCheck(ctx context.Context) error {
	if redisStore, ok := a.store.(*storage.RedisStorage); ok {
		return redisStore.Ping(ctx)
	}
	return nil
}

func (a *application) Close() {
	if err := a.store.Close(); err != nil {
		logger.Warn().Err(err).Msg("error closing store")
	}
}
