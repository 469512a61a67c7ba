package hugtools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ShowDiffTool handles the hug_show_diff MCP tool.
type ShowDiffTool struct {
	runner Runner
}

// NewShowDiffTool creates a ShowDiffTool backed by runner.
func NewShowDiffTool(runner Runner) *ShowDiffTool {
	return &ShowDiffTool{runner: runner}
}

// Definition returns the MCP tool definition for registration.
func (t *ShowDiffTool) Definition() mcp.Tool {
	return mcp.NewTool("hug_show_diff",
		mcp.WithDescription(
			"Show changes in the working directory or between commits. "+
				"Can show unstaged changes, staged changes, or diff between commits.",
		),
		mcp.WithBoolean("staged",
			mcp.Description("Show staged changes (default: show unstaged)"),
		),
		mcp.WithString("file",
			mcp.Description("Show diff for specific file only"),
		),
		mcp.WithString("commit1",
			mcp.Description("First commit for comparison"),
		),
		mcp.WithString("commit2",
			mcp.Description("Second commit for comparison (default: HEAD)"),
		),
		mcp.WithBoolean("stat",
			mcp.Description("Show only statistics, not full diff"),
		),
		mcp.WithString("cwd",
			mcp.Description("Working directory (defaults to current directory)"),
		),
	)
}

// Handle processes the hug_show_diff tool call. With commit1 set the
// diff runs between commits; otherwise staged picks `hug ss` and the
// default is unstaged changes via `hug sw`.
func (t *ShowDiffTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := req.GetString("file", "")

	var args []string
	switch {
	case req.GetString("commit1", "") != "":
		args = []string{"--no-pager", "diff"}
		if req.GetBool("stat", false) {
			args = append(args, "--stat")
		}
		args = append(args, req.GetString("commit1", ""))
		if c2 := req.GetString("commit2", ""); c2 != "" {
			args = append(args, c2)
		}
		if file != "" {
			args = append(args, "--", file)
		}
	case req.GetBool("staged", false):
		args = []string{"ss"}
		if file != "" {
			args = append(args, file)
		}
	default:
		args = []string{"sw"}
		if file != "" {
			args = append(args, file)
		}
	}
	res := t.runner.Execute(ctx, args, req.GetString("cwd", ""))
	return mcp.NewToolResultText(FormatResult(res)), nil
}
