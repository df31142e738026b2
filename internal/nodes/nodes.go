package nodes

import (
	"context"
	"edusync/internal/agent"
)

// KnowledgeLookup fetches a background summary for a topic
type KnowledgeLookup interface {
	Search(ctx context.Context, topic string) (string, error)
}

// Invoker is satisfied by *agent.Agent
type Invoker interface {
	Invoke(ctx context.Context, input string) agent.Outcome
}
