// Package gitcmd runs git subcommands with timeouts and typed errors.
// All history traversal in hug-tools goes through the git CLI because
// the downstream parsers are defined against git's text formats.
package gitcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single git invocation. Dirty-state probes
// use the much shorter DirtyTimeout since they run once per worktree.
const (
	DefaultTimeout = 60 * time.Second
	DirtyTimeout   = 5 * time.Second
)

// GitError carries the failing subcommand and git's stderr so callers
// can branch on the command and surface the real diagnostic.
type GitError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), e.Stderr)
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *GitError) Unwrap() error { return e.Err }

// Runner executes git in a fixed working directory.
type Runner struct {
	// Dir is the working directory for every invocation. Empty means
	// the process working directory.
	Dir string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

// New returns a Runner operating in dir.
func New(dir string) *Runner {
	return &Runner{Dir: dir}
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

// Output runs git with args and returns trimmed stdout. Non-zero exit
// and timeouts return a *GitError.
func (r *Runner) Output(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return "", &GitError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Lines runs git and splits stdout into lines, dropping a trailing
// empty line. Returns nil for empty output.
func (r *Runner) Lines(ctx context.Context, args ...string) ([]string, error) {
	out, err := r.Output(ctx, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Quiet runs git and reports only whether it exited zero. Timeouts and
// spawn failures are returned as errors; a plain non-zero exit is
// (false, nil) since for --quiet style probes that is an answer, not a
// failure.
func (r *Runner) Quiet(ctx context.Context, args ...string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return false, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return false, &GitError{Args: args, Err: err}
}
