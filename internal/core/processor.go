package core

import (
	"context"
	"edusync/pkg"
	"edusync/src/logger"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
)

// ErrFieldOverwritten is returned when a stage rewrites a field another
// stage already produced
var ErrFieldOverwritten = errors.New("stage overwrote an existing state field")

const graphName = "study_session"

// SessionProcessor runs the registered nodes in order. The eino graph is the
// primary strategy; a plain sequential loop is the fallback.
type SessionProcessor struct {
	nodes       []Node
	names       map[string]bool
	checkpoints CheckpointStore
	newThreadID func() string
	now         func() time.Time
}

// NewSessionProcessor creates a processor. checkpoints may be nil.
func NewSessionProcessor(checkpoints CheckpointStore) *SessionProcessor {
	return &SessionProcessor{
		names:       make(map[string]bool),
		checkpoints: checkpoints,
		newThreadID: func() string { return "ui-" + uuid.NewString() },
		now:         time.Now,
	}
}

// AddNode appends node to the pipeline
func (p *SessionProcessor) AddNode(node Node) error {
	if node == nil {
		return fmt.Errorf("node cannot be nil")
	}

	nodeName := node.GetName()
	if nodeName == "" {
		return fmt.Errorf("node name cannot be empty")
	}
	if nodeName == compose.START || nodeName == compose.END {
		return fmt.Errorf("node name %q is reserved", nodeName)
	}
	if p.names[nodeName] {
		return fmt.Errorf("node already registered: %s", nodeName)
	}

	p.nodes = append(p.nodes, node)
	p.names[nodeName] = true
	logger.Debug().Str("node", nodeName).Str("type", string(node.GetType())).Msg("node added")

	return nil
}

// Run executes one study session for topic
func (p *SessionProcessor) Run(ctx context.Context, topic string) (*pkg.Result, error) {
	if len(p.nodes) == 0 {
		return nil, fmt.Errorf("no nodes registered")
	}

	startTime := p.now()
	threadID := p.newThreadID()
	log := logger.Logger.With().Str("thread_id", threadID).Logger()
	log.Info().Str("topic", topic).Msg("starting study session")

	strategy := pkg.StrategyGraph
	state, err := p.runGraph(ctx, threadID, topic)
	if err != nil || state.Empty() {
		if err != nil {
			log.Warn().Err(err).Msg("graph execution failed, running stages directly")
		} else {
			log.Warn().Msg("graph produced no content, running stages directly")
		}

		strategy = pkg.StrategyDirect
		state, err = p.runDirect(ctx, topic)
		if err != nil {
			log.Error().Err(err).Msg("study session failed")
			return nil, fmt.Errorf("study session %s: %w", threadID, err)
		}
	}

	result := state.Result()
	result.ThreadID = threadID
	result.Strategy = strategy
	result.DurationMs = p.now().Sub(startTime).Milliseconds()

	log.Info().
		Str("strategy", string(strategy)).
		Int64("duration_ms", result.DurationMs).
		Msg("study session completed")

	return result, nil
}

// graphTrail is the per-run local state of the graph
type graphTrail struct {
	completed []string
}

func (p *SessionProcessor) buildGraph(ctx context.Context, threadID string) (compose.Runnable[*State, *State], error) {
	graph := compose.NewGraph[*State, *State](compose.WithGenLocalState(func(ctx context.Context) *graphTrail {
		return &graphTrail{}
	}))

	previous := compose.START
	for i, node := range p.nodes {
		step := i + 1
		name := node.GetName()

		lambda := compose.InvokableLambda(func(ctx context.Context, state *State) (*State, error) {
			if err := executeNode(ctx, node, state); err != nil {
				return nil, err
			}
			return state, nil
		})

		checkpoint := func(ctx context.Context, out *State, trail *graphTrail) (*State, error) {
			trail.completed = append(trail.completed, name)
			p.saveCheckpoint(ctx, Checkpoint{
				ThreadID:  threadID,
				Node:      name,
				Step:      step,
				State:     *out,
				SavedAt:   p.now(),
				Completed: append([]string(nil), trail.completed...),
			})
			return out, nil
		}

		if err := graph.AddLambdaNode(name, lambda,
			compose.WithNodeName(name), compose.WithStatePostHandler(checkpoint)); err != nil {
			return nil, fmt.Errorf("error adding node %s: %w", name, err)
		}
		if err := graph.AddEdge(previous, name); err != nil {
			return nil, fmt.Errorf("error adding edge %s->%s: %w", previous, name, err)
		}
		previous = name
	}

	if err := graph.AddEdge(previous, compose.END); err != nil {
		return nil, fmt.Errorf("error adding edge %s->END: %w", previous, err)
	}

	return graph.Compile(ctx, compose.WithGraphName(graphName))
}

func (p *SessionProcessor) runGraph(ctx context.Context, threadID, topic string) (*State, error) {
	runnable, err := p.buildGraph(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}
	return runnable.Invoke(ctx, &State{Topic: topic})
}

func (p *SessionProcessor) runDirect(ctx context.Context, topic string) (*State, error) {
	state := &State{Topic: topic}
	for _, node := range p.nodes {
		if err := executeNode(ctx, node, state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func (p *SessionProcessor) saveCheckpoint(ctx context.Context, checkpoint Checkpoint) {
	if p.checkpoints == nil {
		return
	}
	if err := p.checkpoints.Save(ctx, checkpoint); err != nil {
		logger.Warn().Err(err).Str("thread_id", checkpoint.ThreadID).Str("node", checkpoint.Node).Msg("checkpoint not saved")
	}
}

// executeNode runs one node and enforces that it only adds its own field
func executeNode(ctx context.Context, node Node, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	before := *state
	startTime := time.Now()
	if err := node.Execute(ctx, state); err != nil {
		return fmt.Errorf("error executing node %s: %w", node.GetName(), err)
	}
	if err := checkAppendOnly(before, *state); err != nil {
		return fmt.Errorf("node %s: %w", node.GetName(), err)
	}

	logger.Debug().
		Str("node", node.GetName()).
		Dur("elapsed", time.Since(startTime)).
		Msg("node executed")
	return nil
}

func checkAppendOnly(before, after State) error {
	if before.Topic != after.Topic {
		return fmt.Errorf("%w: topic", ErrFieldOverwritten)
	}
	fields := []struct {
		name          string
		before, after string
	}{
		{"research", before.Research, after.Research},
		{"quiz", before.Quiz, after.Quiz},
		{"explanations", before.Explanations, after.Explanations},
	}
	for _, f := range fields {
		if f.before != "" && f.before != f.after {
			return fmt.Errorf("%w: %s", ErrFieldOverwritten, f.name)
		}
	}
	return nil
}
