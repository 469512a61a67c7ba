package hugtools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// BranchListTool handles the hug_branch_list MCP tool.
type BranchListTool struct {
	runner Runner
}

// NewBranchListTool creates a BranchListTool backed by runner.
func NewBranchListTool(runner Runner) *BranchListTool {
	return &BranchListTool{runner: runner}
}

// Definition returns the MCP tool definition for registration.
func (t *BranchListTool) Definition() mcp.Tool {
	return mcp.NewTool("hug_branch_list",
		mcp.WithDescription(
			"List branches in the repository. "+
				"Shows all branches with indication of current branch.",
		),
		mcp.WithBoolean("all",
			mcp.Description("Include remote branches"),
		),
		mcp.WithBoolean("verbose",
			mcp.Description("Show more details (last commit info)"),
		),
		mcp.WithString("cwd",
			mcp.Description("Working directory (defaults to current directory)"),
		),
	)
}

// Handle processes the hug_branch_list tool call.
func (t *BranchListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := []string{"b"}
	if req.GetBool("all", false) {
		args = append(args, "-a")
	}
	if req.GetBool("verbose", false) {
		args = append(args, "-v")
	}
	res := t.runner.Execute(ctx, args, req.GetString("cwd", ""))
	return mcp.NewToolResultText(FormatResult(res)), nil
}
