package hugtools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HStepsTool handles the hug_h_steps MCP tool.
type HStepsTool struct {
	runner Runner
}

// NewHStepsTool creates an HStepsTool backed by runner.
func NewHStepsTool(runner Runner) *HStepsTool {
	return &HStepsTool{runner: runner}
}

// Definition returns the MCP tool definition for registration.
func (t *HStepsTool) Definition() mcp.Tool {
	return mcp.NewTool("hug_h_steps",
		mcp.WithDescription(
			"Find how many steps (commits) back from HEAD to the last change in a file. "+
				"Useful for understanding when a file was last modified.",
		),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("File path to check"),
		),
		mcp.WithBoolean("raw",
			mcp.Description("Show raw step count only"),
		),
		mcp.WithString("cwd",
			mcp.Description("Working directory (defaults to current directory)"),
		),
	)
}

// Handle processes the hug_h_steps tool call.
func (t *HStepsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := req.GetString("file", "")
	if file == "" {
		return mcp.NewToolResultError("file parameter is required"), nil
	}
	args := []string{"h", "steps", file}
	if req.GetBool("raw", false) {
		args = append(args, "--raw")
	}
	res := t.runner.Execute(ctx, args, req.GetString("cwd", ""))
	return mcp.NewToolResultText(FormatResult(res)), nil
}
