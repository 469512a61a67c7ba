package hugtools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusTool handles the hug_status MCP tool.
type StatusTool struct {
	runner Runner
}

// NewStatusTool creates a StatusTool backed by runner.
func NewStatusTool(runner Runner) *StatusTool {
	return &StatusTool{runner: runner}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("hug_status",
		mcp.WithDescription(
			"Get repository status showing modified, staged, and untracked files. "+
				"Provides a clear overview of the current state of the working directory.",
		),
		mcp.WithString("format",
			mcp.Description("Status format: 'short' (sl) or 'long' (s)"),
			mcp.Enum("short", "long"),
			mcp.DefaultString("short"),
		),
		mcp.WithString("cwd",
			mcp.Description("Working directory (defaults to current directory)"),
		),
	)
}

// Handle processes the hug_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := []string{"sl"}
	if req.GetString("format", "short") == "long" {
		args = []string{"s"}
	}
	res := t.runner.Execute(ctx, args, req.GetString("cwd", ""))
	return mcp.NewToolResultText(FormatResult(res)), nil
}
