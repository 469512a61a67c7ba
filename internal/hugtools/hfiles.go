package hugtools

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// HFilesTool handles the hug_h_files MCP tool.
type HFilesTool struct {
	runner Runner
}

// NewHFilesTool creates an HFilesTool backed by runner.
func NewHFilesTool(runner Runner) *HFilesTool {
	return &HFilesTool{runner: runner}
}

// Definition returns the MCP tool definition for registration.
func (t *HFilesTool) Definition() mcp.Tool {
	return mcp.NewTool("hug_h_files",
		mcp.WithDescription(
			"Preview files and line change stats touched by commits. "+
				"Useful for understanding what files were modified in recent commits "+
				"or in local-only commits not yet pushed.",
		),
		mcp.WithNumber("count",
			mcp.Description("Number of commits to look back (default: 1)"),
		),
		mcp.WithString("commit",
			mcp.Description("Specific commit to compare against HEAD"),
		),
		mcp.WithBoolean("upstream",
			mcp.Description("Show files in local-only commits (not pushed)"),
		),
		mcp.WithString("temporal",
			mcp.Description("Time-based filter (e.g., '3 days ago', '1 week ago', '2024-01-15')"),
		),
		mcp.WithBoolean("show_patch",
			mcp.Description("Show full diff before stats"),
		),
		mcp.WithString("cwd",
			mcp.Description("Working directory (defaults to current directory)"),
		),
	)
}

// Handle processes the hug_h_files tool call. The upstream, temporal,
// commit and count parameters are mutually exclusive in `hug h files`;
// the first one present in that order wins. show_patch is independent.
func (t *HFilesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := []string{"h", "files"}
	switch {
	case req.GetBool("upstream", false):
		args = append(args, "-u")
	case req.GetString("temporal", "") != "":
		args = append(args, "-t", req.GetString("temporal", ""))
	case req.GetString("commit", "") != "":
		args = append(args, req.GetString("commit", ""))
	case req.GetInt("count", 0) > 0:
		args = append(args, strconv.Itoa(req.GetInt("count", 0)))
	}
	if req.GetBool("show_patch", false) {
		args = append(args, "-p")
	}
	res := t.runner.Execute(ctx, args, req.GetString("cwd", ""))
	return mcp.NewToolResultText(FormatResult(res)), nil
}
