package lookup

import (
	"context"
	"edusync/src/logger"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
)

// ToolName is the name the summary tool is registered under
const ToolName = "wikipedia_summary"

// Searcher is anything that can return a topic summary
type Searcher interface {
	Search(ctx context.Context, topic string) (string, error)
}

// SummaryRequest is the tool's argument object
type SummaryRequest struct {
	Topic string `json:"topic"`
}

// NewSummaryTool exposes searcher as an eino tool so a tool-calling model can
// request the same summary the research stage uses
func NewSummaryTool(searcher Searcher) (tool.InvokableTool, error) {
	summaryTool, err := utils.InferTool(ToolName, "Fetch a short Wikipedia summary for a study topic",
		func(ctx context.Context, req *SummaryRequest) (string, error) {
			topic := strings.TrimSpace(req.Topic)
			if topic == "" {
				return "", fmt.Errorf("topic is required")
			}
			logger.Debug().Str("tool", ToolName).Str("topic", topic).Msg("tool invoked")
			return searcher.Search(ctx, topic)
		})
	if err != nil {
		return nil, fmt.Errorf("error creating %s tool: %w", ToolName, err)
	}
	return summaryTool, nil
}
