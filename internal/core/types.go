package core

import (
	"context"
	"edusync/pkg"
	"time"
)

// Node is one stage of the study pipeline. Execute reads state and writes
// exactly one field of it.
type Node interface {
	Execute(ctx context.Context, state *State) error
	GetName() string
	GetType() NodeType
}

// NodeType defines the different types of nodes in the pipeline
type NodeType string

const (
	NodeTypeResearch NodeType = "research"
	NodeTypeQuiz     NodeType = "quiz"
	NodeTypeExplain  NodeType = "explain"
)

// State is the session state threaded through the stages
type State struct {
	Topic        string `json:"topic"`
	Research     string `json:"research"`
	Quiz         string `json:"quiz"`
	Explanations string `json:"explanations"`
}

// Empty reports whether no stage produced any text
func (s *State) Empty() bool {
	return s == nil || (s.Research == "" && s.Quiz == "" && s.Explanations == "")
}

// Result copies the four fields into a result
func (s *State) Result() *pkg.Result {
	return &pkg.Result{
		Topic:        s.Topic,
		Research:     s.Research,
		Quiz:         s.Quiz,
		Explanations: s.Explanations,
	}
}

// Checkpoint is the state recorded after a graph node completes
type Checkpoint struct {
	ThreadID  string    `json:"thread_id"`
	Node      string    `json:"node"`
	Step      int       `json:"step"`
	State     State     `json:"state"`
	SavedAt   time.Time `json:"saved_at"`
	Completed []string  `json:"completed"`
}

// CheckpointStore persists the latest checkpoint per thread
type CheckpointStore interface {
	Save(ctx context.Context, checkpoint Checkpoint) error
	Load(ctx context.Context, threadID string) (*Checkpoint, error)
}
