package nodes

import (
	"context"
	"edusync/internal/core"
	"edusync/src/llm/study"
	"edusync/src/logger"
)

// ExplainNode explains each quiz line in turn
type ExplainNode struct {
	agent Invoker
}

func NewExplainNode(explainAgent Invoker) *ExplainNode {
	return &ExplainNode{agent: explainAgent}
}

// Execute writes state.Explanations. Lines are explained one at a time.
func (n *ExplainNode) Execute(ctx context.Context, state *core.State) error {
	lines := study.QuizLines(state.Quiz)
	blocks := make([]string, 0, len(lines))
	fallbacks := 0

	for _, line := range lines {
		outcome := n.agent.Invoke(ctx, line)
		if err := ctx.Err(); err != nil {
			return err
		}

		explanation := outcome.Content
		if !outcome.OK() {
			explanation = study.ExplainFallback
			fallbacks++
		}
		blocks = append(blocks, study.ExplanationBlock(line, explanation))
	}

	if fallbacks > 0 {
		logger.Info().Int("lines", len(lines)).Int("fallbacks", fallbacks).Msg("used explanation template")
	}
	state.Explanations = study.JoinExplanations(blocks)
	return nil
}

func (n *ExplainNode) GetName() string {
	return "explain"
}

func (n *ExplainNode) GetType() core.NodeType {
	return core.NodeTypeExplain
}
