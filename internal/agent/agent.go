package agent

import (
	"context"
	"edusync/src/logger"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

// ChatModel is the part of an eino chat model an agent needs
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Reason classifies an agent invocation
type Reason string

const (
	ReasonOK    Reason = "ok"
	ReasonError Reason = "error"
	ReasonEmpty Reason = "empty"
)

// ErrEmptyReply is carried by outcomes whose reply was blank
var ErrEmptyReply = errors.New("agent returned an empty reply")

// Outcome is the typed result of one agent call. Callers decide the
// fallback text when OK is false.
type Outcome struct {
	Content string
	Reason  Reason
	Err     error
}

// OK reports whether the call produced usable content
func (o Outcome) OK() bool {
	return o.Reason == ReasonOK
}

// Agent is a fixed (model parameters, instruction) pair
type Agent struct {
	Name        string
	Temperature float32
	Instruction string

	model    ChatModel
	template prompt.ChatTemplate
	timeout  time.Duration
}

// New wires preset to chatModel. timeout bounds each call; zero disables it.
func New(preset Preset, chatModel ChatModel, timeout time.Duration) *Agent {
	return &Agent{
		Name:        preset.Name,
		Temperature: preset.Temperature,
		Instruction: preset.Instruction,
		model:       chatModel,
		template:    newTemplate(preset.Instruction),
		timeout:     timeout,
	}
}

// newTemplate builds [system instruction, user input]. Braces in the
// instruction are escaped so only {input} is a placeholder.
func newTemplate(instruction string) prompt.ChatTemplate {
	escaped := strings.NewReplacer("{", "{{", "}", "}}").Replace(instruction)
	return prompt.FromMessages(schema.FString,
		schema.SystemMessage(escaped),
		schema.UserMessage("{input}"),
	)
}

// Invoke sends input as the user message and classifies the reply
func (a *Agent) Invoke(ctx context.Context, input string) Outcome {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	messages, err := a.template.Format(ctx, map[string]any{"input": input})
	if err != nil {
		return a.fail(ReasonError, fmt.Errorf("format prompt: %w", err))
	}

	out, err := a.model.Generate(ctx, messages)
	if err != nil {
		return a.fail(ReasonError, fmt.Errorf("%s agent: %w", a.Name, err))
	}

	content := ""
	if out != nil {
		content = strings.TrimSpace(out.Content)
	}
	if content == "" {
		return a.fail(ReasonEmpty, ErrEmptyReply)
	}

	logger.Debug().
		Str("agent", a.Name).
		Int("reply_length", len(content)).
		Dur("elapsed", time.Since(start)).
		Msg("agent replied")

	return Outcome{Content: content, Reason: ReasonOK}
}

func (a *Agent) fail(reason Reason, err error) Outcome {
	logger.Warn().Str("agent", a.Name).Str("reason", string(reason)).Err(err).Msg("agent call failed")
	return Outcome{Reason: reason, Err: err}
}
