package hugtools

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// LogTool handles the hug_log MCP tool.
type LogTool struct {
	runner Runner
}

// NewLogTool creates a LogTool backed by runner.
func NewLogTool(runner Runner) *LogTool {
	return &LogTool{runner: runner}
}

// Definition returns the MCP tool definition for registration.
func (t *LogTool) Definition() mcp.Tool {
	return mcp.NewTool("hug_log",
		mcp.WithDescription(
			"View commit history with various filters. "+
				"Shows commit messages, authors, and dates.",
		),
		mcp.WithNumber("count",
			mcp.Description("Number of commits to show (default: 10)"),
		),
		mcp.WithString("file",
			mcp.Description("Show commits that modified this file"),
		),
		mcp.WithString("search",
			mcp.Description("Search for commits containing this text in message"),
		),
		mcp.WithBoolean("oneline",
			mcp.Description("Show one line per commit"),
		),
		mcp.WithString("cwd",
			mcp.Description("Working directory (defaults to current directory)"),
		),
	)
}

// Handle processes the hug_log tool call.
func (t *LogTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := []string{"l", "-n", strconv.Itoa(req.GetInt("count", 10))}
	if req.GetBool("oneline", false) {
		args = append(args, "--oneline")
	}
	if search := req.GetString("search", ""); search != "" {
		args = append(args, "--grep", search)
	}
	if file := req.GetString("file", ""); file != "" {
		args = append(args, "--", file)
	}
	res := t.runner.Execute(ctx, args, req.GetString("cwd", ""))
	return mcp.NewToolResultText(FormatResult(res)), nil
}
