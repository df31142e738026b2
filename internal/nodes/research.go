package nodes

import (
	"context"
	"edusync/internal/core"
	"edusync/internal/lookup"
	"edusync/src/llm/study"
	"edusync/src/logger"
)

// ResearchNode grounds the research agent on a lookup summary
type ResearchNode struct {
	agent  Invoker
	lookup KnowledgeLookup
}

// NewResearchNode creates the research stage. lookup may be nil.
func NewResearchNode(researchAgent Invoker, knowledge KnowledgeLookup) *ResearchNode {
	return &ResearchNode{agent: researchAgent, lookup: knowledge}
}

// Execute writes state.Research
func (n *ResearchNode) Execute(ctx context.Context, state *core.State) error {
	summary := n.fetchContext(ctx, state.Topic)
	if err := ctx.Err(); err != nil {
		return err
	}

	outcome := n.agent.Invoke(ctx, study.ResearchPrompt(state.Topic, summary))
	if err := ctx.Err(); err != nil {
		return err
	}

	if outcome.OK() {
		state.Research = outcome.Content
	} else {
		logger.Info().Str("topic", state.Topic).Bool("has_context", summary != "").Msg("using research template")
		state.Research = study.ResearchFallback(state.Topic, summary)
	}
	return nil
}

// fetchContext returns "" when no usable summary exists. Lookup errors and
// the NoResult sentinel are both treated as missing context, not propagated.
func (n *ResearchNode) fetchContext(ctx context.Context, topic string) string {
	if n.lookup == nil {
		return ""
	}
	extract, err := n.lookup.Search(ctx, topic)
	if err != nil {
		logger.Warn().Err(err).Str("topic", topic).Msg("knowledge lookup failed")
		return ""
	}
	if extract == lookup.NoResult {
		return ""
	}
	return extract
}

// GetName returns the node name
func (n *ResearchNode) GetName() string {
	return "research"
}

// GetType returns the node type
func (n *ResearchNode) GetType() core.NodeType {
	return core.NodeTypeResearch
}
