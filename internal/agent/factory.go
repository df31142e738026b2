package agent

import (
	"context"
	"edusync/src/llm/study"
	"edusync/src/model"
	"fmt"
)

// Agent names
const (
	ResearchAgent = "research"
	QuizAgent     = "quiz"
	ExplainAgent  = "explain"
)

// Preset is the per-agent part of the configuration
type Preset struct {
	Name        string
	Temperature float32
	Instruction string
}

// DefaultPresets returns a fresh copy of the built-in presets
func DefaultPresets() map[string]Preset {
	return map[string]Preset{
		ResearchAgent: {Name: ResearchAgent, Temperature: 0.2, Instruction: study.ResearchInstruction},
		QuizAgent:     {Name: QuizAgent, Temperature: 0.4, Instruction: study.QuizInstruction},
		ExplainAgent:  {Name: ExplainAgent, Temperature: 0.3, Instruction: study.ExplainInstruction},
	}
}

// Set bundles the three agents of a study session
type Set struct {
	Research *Agent
	Quiz     *Agent
	Explain  *Agent
}

// NewResearchAgent creates the research agent
func NewResearchAgent(ctx context.Context, config model.AgentConfig, preset Preset) (*Agent, error) {
	return newAgent(ctx, config, preset)
}

// NewQuizAgent creates the quiz agent
func NewQuizAgent(ctx context.Context, config model.AgentConfig, preset Preset) (*Agent, error) {
	return newAgent(ctx, config, preset)
}

// NewExplainAgent creates the explanation agent
func NewExplainAgent(ctx context.Context, config model.AgentConfig, preset Preset) (*Agent, error) {
	return newAgent(ctx, config, preset)
}

// NewSet builds all three agents from config and presets
func NewSet(ctx context.Context, config model.AgentConfig, presets map[string]Preset) (*Set, error) {
	research, err := NewResearchAgent(ctx, config, presets[ResearchAgent])
	if err != nil {
		return nil, err
	}
	quiz, err := NewQuizAgent(ctx, config, presets[QuizAgent])
	if err != nil {
		return nil, err
	}
	explain, err := NewExplainAgent(ctx, config, presets[ExplainAgent])
	if err != nil {
		return nil, err
	}
	return &Set{Research: research, Quiz: quiz, Explain: explain}, nil
}

func newAgent(ctx context.Context, config model.AgentConfig, preset Preset) (*Agent, error) {
	if preset.Name == "" {
		return nil, fmt.Errorf("agent preset has no name")
	}
	chatModel, err := NewChatModel(ctx, config, preset.Temperature)
	if err != nil {
		return nil, fmt.Errorf("error creating %s agent: %w", preset.Name, err)
	}
	return New(preset, chatModel, config.Timeout), nil
}
