// Package worktree lists git worktrees with their branch, commit and
// dirty state for the Hug SCM `hug wt` command.
package worktree

import (
	"context"
	"strconv"
	"strings"

	"github.com/hug-scm/hug-tools/internal/bashout"
	"github.com/hug-scm/hug-tools/internal/gitcmd"
	"github.com/hug-scm/hug-tools/internal/models"
)

// Parse reads `git worktree list --porcelain` output into worktrees.
// Dirty is left false; List fills it in per worktree afterwards.
func Parse(out string) []models.Worktree {
	var (
		trees []models.Worktree
		cur   *models.Worktree
	)
	flush := func() {
		if cur != nil {
			trees = append(trees, *cur)
			cur = nil
		}
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			cur = &models.Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case cur == nil:
			// Attribute lines before the first worktree header are noise.
		case strings.HasPrefix(line, "branch refs/heads/"):
			cur.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case strings.HasPrefix(line, "branch "):
			// Other ref namespaces count as detached.
			cur.Detached = true
		case strings.HasPrefix(line, "HEAD "):
			h := strings.TrimPrefix(line, "HEAD ")
			if len(h) > 7 {
				h = h[:7]
			}
			cur.Commit = h
		case line == "detached":
			cur.Detached = true
		case line == "locked" || strings.HasPrefix(line, "locked "):
			cur.Locked = true
		case line == "":
			flush()
		}
	}
	flush()
	return trees
}

// Lister reads worktree state from a repository.
type Lister struct {
	runner *gitcmd.Runner
}

// NewLister returns a Lister using r.
func NewLister(r *gitcmd.Runner) *Lister {
	return &Lister{runner: r}
}

// List returns all worktrees with dirty state resolved. The main
// repository checkout is excluded unless includeMain is set; mainPath
// overrides the discovered toplevel when non-empty.
func (l *Lister) List(ctx context.Context, includeMain bool, mainPath string) ([]models.Worktree, error) {
	out, err := l.runner.Output(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	trees := Parse(out)

	if !includeMain {
		if mainPath == "" {
			if top, err := l.runner.Output(ctx, "rev-parse", "--show-toplevel"); err == nil {
				mainPath = top
			}
		}
		if mainPath != "" {
			kept := trees[:0]
			for _, wt := range trees {
				if wt.Path != mainPath {
					kept = append(kept, wt)
				}
			}
			trees = kept
		}
	}

	for i := range trees {
		trees[i].Dirty = l.isDirty(ctx, trees[i].Path)
	}
	return trees, nil
}

// isDirty reports staged or unstaged changes or untracked files in
// dir. Check failures count as clean so one broken worktree cannot
// sink the listing.
func (l *Lister) isDirty(ctx context.Context, dir string) bool {
	r := &gitcmd.Runner{Dir: dir, Timeout: gitcmd.DirtyTimeout}
	if clean, err := r.Quiet(ctx, "diff", "--quiet"); err == nil && !clean {
		return true
	}
	if clean, err := r.Quiet(ctx, "diff", "--cached", "--quiet"); err == nil && !clean {
		return true
	}
	out, err := r.Output(ctx, "ls-files", "--others", "--exclude-standard")
	return err == nil && out != ""
}

// BashDeclare renders the worktrees as eval-ready parallel arrays.
// Boolean state travels as "true"/"false" strings.
func BashDeclare(trees []models.Worktree) string {
	paths := make([]string, len(trees))
	branches := make([]string, len(trees))
	commits := make([]string, len(trees))
	dirty := make([]string, len(trees))
	locked := make([]string, len(trees))
	for i, wt := range trees {
		paths[i] = wt.Path
		branches[i] = wt.Branch
		commits[i] = wt.Commit
		dirty[i] = strconv.FormatBool(wt.Dirty)
		locked[i] = strconv.FormatBool(wt.Locked)
	}
	return bashout.Lines(
		bashout.Array("_wt_paths", paths),
		bashout.Array("_wt_branches", branches),
		bashout.Array("_wt_commits", commits),
		bashout.Array("_wt_dirty_status", dirty),
		bashout.Array("_wt_locked_status", locked),
	)
}
