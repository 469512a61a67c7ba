// Package mcpserver wires the hug MCP tools into a stdio server.
//
// This is the composition root: it creates the shared command executor
// and registers every tool. No command logic lives here.
package mcpserver

import (
	"github.com/hug-scm/hug-tools/internal/hugtools"
	"github.com/mark3labs/mcp-go/server"
)

// New creates the MCP server with all hug tools registered.
func New(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"hug-scm-mcp-server",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	executor := hugtools.NewExecutor()

	statusTool := hugtools.NewStatusTool(executor)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	logTool := hugtools.NewLogTool(executor)
	s.AddTool(logTool.Definition(), logTool.Handle)

	branchListTool := hugtools.NewBranchListTool(executor)
	s.AddTool(branchListTool.Definition(), branchListTool.Handle)

	hFilesTool := hugtools.NewHFilesTool(executor)
	s.AddTool(hFilesTool.Definition(), hFilesTool.Handle)

	hStepsTool := hugtools.NewHStepsTool(executor)
	s.AddTool(hStepsTool.Definition(), hStepsTool.Handle)

	showDiffTool := hugtools.NewShowDiffTool(executor)
	s.AddTool(showDiffTool.Definition(), showDiffTool.Handle)

	return s
}

// Serve runs the server on stdio until the client disconnects.
func Serve(version string) error {
	return server.ServeStdio(New(version))
}

// serverInstructions tells the AI client how the hug tools map onto
// the repository.
func serverInstructions() string {
	return `You have access to Hug SCM, a friendly layer over git.

Use these tools to inspect repositories without running raw git:
- hug_status: working directory state (short or long format)
- hug_log: commit history with count/file/search filters
- hug_branch_list: local (and optionally remote) branches
- hug_h_files: files and line stats touched by recent or local-only commits
- hug_h_steps: how many commits back a file last changed
- hug_show_diff: unstaged, staged, or commit-to-commit diffs

All tools accept a cwd parameter; omit it to use the server's working
directory. Pass the repository root when inspecting another checkout.
Prefer hug_status and hug_h_files to orient yourself before proposing
changes, and hug_show_diff to review exactly what is modified.`
}
