package pkg

// Study session types shared by the runner and the presentation layers

// Strategy names which executor produced a result
type Strategy string

const (
	StrategyGraph  Strategy = "graph"
	StrategyDirect Strategy = "direct"
)

// Result is the immutable outcome of one study session
type Result struct {
	Topic        string   `json:"topic"`
	Research     string   `json:"research"`
	Quiz         string   `json:"quiz"`
	Explanations string   `json:"explanations"`
	Error        string   `json:"error,omitempty"`
	ThreadID     string   `json:"thread_id,omitempty"`
	Strategy     Strategy `json:"strategy,omitempty"`
	DurationMs   int64    `json:"duration_ms"`
}

// QuizItem is one "Q: ... A: ..." line of a quiz
type QuizItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Raw      string `json:"raw"`
}
