package nodes

import (
	"context"
	"edusync/internal/core"
	"edusync/src/llm/study"
	"edusync/src/logger"
)

// QuizNode turns the research text into question/answer lines
type QuizNode struct {
	agent Invoker
}

func NewQuizNode(quizAgent Invoker) *QuizNode {
	return &QuizNode{agent: quizAgent}
}

// Execute writes state.Quiz
func (n *QuizNode) Execute(ctx context.Context, state *core.State) error {
	outcome := n.agent.Invoke(ctx, study.QuizPrompt(state.Topic, state.Research))
	if err := ctx.Err(); err != nil {
		return err
	}

	if outcome.OK() {
		state.Quiz = outcome.Content
		return nil
	}

	logger.Info().Str("topic", state.Topic).Str("reason", string(outcome.Reason)).Msg("using quiz template")
	state.Quiz = study.QuizFallback(state.Topic)
	return nil
}

func (n *QuizNode) GetName() string {
	return "quiz"
}

func (n *QuizNode) GetType() core.NodeType {
	return core.NodeTypeQuiz
}
