// Package hugtools exposes Hug SCM commands as MCP tools. Each tool
// maps its arguments to a `hug` CLI invocation and returns the captured
// output; no git state is interpreted here.
package hugtools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/hug-scm/hug-tools/internal/repo"
)

// DefaultTimeout bounds a single hug invocation.
const DefaultTimeout = 30 * time.Second

// Result is the outcome of one hug command.
type Result struct {
	Success  bool
	Output   string
	Error    string
	ExitCode int
}

// Runner executes hug commands. Tools depend on this interface so
// tests can record invocations without a hug binary.
type Runner interface {
	Execute(ctx context.Context, args []string, cwd string) Result
}

// Executor runs the real hug binary with a timeout and a validated
// working directory.
type Executor struct {
	Timeout time.Duration
}

// NewExecutor returns an Executor with DefaultTimeout.
func NewExecutor() *Executor {
	return &Executor{Timeout: DefaultTimeout}
}

// Execute runs `hug args...` in cwd. Failures never surface as Go
// errors: the MCP layer reports them as tool text, so everything is
// folded into the Result.
func (e *Executor) Execute(ctx context.Context, args []string, cwd string) Result {
	dir := cwd
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Result{Error: fmt.Sprintf("Invalid path: %v", err), ExitCode: -1}
		}
		dir = wd
	} else {
		validated, err := repo.ValidateDir(dir)
		if err != nil {
			return Result{Error: fmt.Sprintf("Invalid path: %v", err), ExitCode: -1}
		}
		dir = validated
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "hug", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{Success: true, Output: stdout.String()}
	}

	switch {
	case ctx.Err() != nil:
		return Result{
			Output:   stdout.String(),
			Error:    fmt.Sprintf("Command timed out after %d seconds", int(timeout.Seconds())),
			ExitCode: -1,
		}
	case errors.Is(err, exec.ErrNotFound):
		return Result{
			Error:    "Hug command not found. Please ensure Hug SCM is installed and in PATH.",
			ExitCode: -1,
		}
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	errText := stderr.String()
	if errText == "" {
		errText = err.Error()
	}
	return Result{Output: stdout.String(), Error: errText, ExitCode: exitCode}
}

// FormatResult renders a Result as the tool response text. Success
// yields stdout (or a placeholder); failure yields the error with any
// partial output appended.
func FormatResult(r Result) string {
	if r.Success {
		if r.Output == "" {
			return "(No output)"
		}
		return r.Output
	}
	errMsg := r.Error
	if errMsg == "" {
		errMsg = "Unknown error"
	}
	text := "Error executing command:\n" + errMsg
	if r.Output != "" {
		text += "\n\nOutput:\n" + r.Output
	}
	return text
}
