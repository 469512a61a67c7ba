// Package branch implements branch listing, filtering, selection and
// search for the Hug SCM shell commands. Listings come from
// `git for-each-ref` with NUL-delimited fields; results go back to the
// shell as bash declare statements or JSON.
package branch

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hug-scm/hug-tools/internal/bashout"
	"github.com/hug-scm/hug-tools/internal/gitcmd"
	"github.com/hug-scm/hug-tools/internal/models"
)

// backupPrefix marks branches the shell tooling creates before risky
// operations; listings hide them by default.
const backupPrefix = "hug-backups/"

// WIPPattern is the default ref pattern of work-in-progress branches.
const WIPPattern = "refs/heads/WIP/"

// Details is a complete branch listing.
type Details struct {
	CurrentBranch string          `json:"current_branch"`
	MaxLen        int             `json:"max_len"`
	Branches      []models.Branch `json:"branches"`
}

// Lister reads branch information from a repository.
type Lister struct {
	runner *gitcmd.Runner
}

// NewLister returns a Lister using r.
func NewLister(r *gitcmd.Runner) *Lister {
	return &Lister{runner: r}
}

// forEachRef returns the NUL-delimited fields of a for-each-ref query,
// sorted by refname.
func (l *Lister) forEachRef(ctx context.Context, format, pattern string) ([]string, error) {
	out, err := l.runner.Output(ctx, "for-each-ref", "--format="+format, "--sort=refname", pattern)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\x00"), nil
}

// Local lists local branches with upstream divergence. Returns nil
// when the repository has no branches.
func (l *Lister) Local(ctx context.Context, excludeBackup bool) (*Details, error) {
	current, err := l.runner.Output(ctx, "branch", "--show-current")
	if err != nil || current == "" {
		current = "detached HEAD"
	}

	format := "%(refname:short)%00%(objectname:short)%00%(subject)%00%(upstream:short)%00%(upstream:track)%00"
	fields, err := l.forEachRef(ctx, format, "refs/heads/")
	if err != nil || len(fields) == 0 {
		return nil, err
	}

	d := parseLocalFields(fields, excludeBackup, func(name, upstream string) string {
		status, err := l.divergence(ctx, name, upstream)
		if err != nil {
			return ""
		}
		return status
	})
	if d == nil {
		return nil, nil
	}
	d.CurrentBranch = current
	return d, nil
}

// parseLocalFields assembles local branches from 5-field chunks. The
// divergence callback returns ahead/behind status for a tracked
// branch, empty when in sync.
func parseLocalFields(fields []string, excludeBackup bool, divergence func(name, upstream string) string) *Details {
	const chunk = 5
	var branches []models.Branch
	maxLen := 0
	for i := 0; i+chunk <= len(fields); i += chunk {
		name := strings.TrimSpace(fields[i])
		if name == "" {
			continue
		}
		if excludeBackup && strings.HasPrefix(name, backupPrefix) {
			continue
		}
		upstream := strings.TrimSpace(fields[i+3])

		track := ""
		if upstream != "" {
			track = "[" + upstream + "]"
			if status := divergence(name, upstream); status != "" {
				track = fmt.Sprintf("[%s: %s]", upstream, status)
			}
		}
		if len(name) > maxLen {
			maxLen = len(name)
		}
		branches = append(branches, models.Branch{
			Name:    name,
			Hash:    fields[i+1],
			Subject: strings.TrimSpace(fields[i+2]),
			Track:   track,
		})
	}
	if len(branches) == 0 {
		return nil
	}
	return &Details{MaxLen: maxLen, Branches: branches}
}

// divergence formats the ahead/behind counts of branch against
// upstream, empty when in sync.
func (l *Lister) divergence(ctx context.Context, branch, upstream string) (string, error) {
	out, err := l.runner.Output(ctx, "rev-list", "--left-right", "--count", branch+"..."+upstream)
	if err != nil || out == "" {
		return "", err
	}
	return FormatDivergence(out), nil
}

// FormatDivergence converts `rev-list --left-right --count` output
// ("A\tB") into "[ahead A, behind B]" style, empty when both zero.
func FormatDivergence(counts string) string {
	parts := strings.Split(counts, "\t")
	if len(parts) != 2 {
		return ""
	}
	ahead, behind := parts[0], parts[1]
	switch {
	case ahead != "0" && behind != "0":
		return fmt.Sprintf("[ahead %s, behind %s]", ahead, behind)
	case ahead != "0":
		return fmt.Sprintf("[ahead %s]", ahead)
	case behind != "0":
		return fmt.Sprintf("[behind %s]", behind)
	}
	return ""
}

// Remote lists remote branches with the remote prefix stripped,
// skipping HEAD pointers. CurrentBranch is empty: there is no current
// remote branch.
func (l *Lister) Remote(ctx context.Context, excludeBackup bool) (*Details, error) {
	format := "%(refname:short)%00%(objectname:short)%00%(subject)%00"
	fields, err := l.forEachRef(ctx, format, "refs/remotes/")
	if err != nil || len(fields) == 0 {
		return nil, err
	}
	return parseRemoteFields(fields, excludeBackup), nil
}

// parseRemoteFields assembles remote branches from 3-field chunks,
// dropping HEAD pointers and stripping the remote name.
func parseRemoteFields(fields []string, excludeBackup bool) *Details {
	const chunk = 3
	var branches []models.Branch
	maxLen := 0
	for i := 0; i+chunk <= len(fields); i += chunk {
		remoteRef := strings.TrimSpace(fields[i])
		if remoteRef == "" || strings.HasSuffix(remoteRef, "/HEAD") {
			continue
		}
		_, name, ok := strings.Cut(remoteRef, "/")
		if !ok || name == "" {
			continue
		}
		if excludeBackup && strings.HasPrefix(name, backupPrefix) {
			continue
		}
		if len(name) > maxLen {
			maxLen = len(name)
		}
		branches = append(branches, models.Branch{
			Name:    name,
			Hash:    fields[i+1],
			Subject: strings.TrimSpace(fields[i+2]),
			Remote:  remoteRef,
		})
	}
	if len(branches) == 0 {
		return nil
	}
	return &Details{MaxLen: maxLen, Branches: branches}
}

// WIP lists work-in-progress branches under pattern (default
// WIPPattern).
func (l *Lister) WIP(ctx context.Context, pattern string) (*Details, error) {
	if pattern == "" {
		pattern = WIPPattern
	}
	format := "%(refname:short)%00%(objectname:short)%00%(subject)%00"
	fields, err := l.forEachRef(ctx, format, pattern)
	if err != nil || len(fields) == 0 {
		return nil, err
	}

	const chunk = 3
	var branches []models.Branch
	maxLen := 0
	for i := 0; i+chunk <= len(fields); i += chunk {
		name := strings.TrimSpace(fields[i])
		if name == "" {
			continue
		}
		if len(name) > maxLen {
			maxLen = len(name)
		}
		branches = append(branches, models.Branch{
			Name:    name,
			Hash:    fields[i+1],
			Subject: strings.TrimSpace(fields[i+2]),
		})
	}
	if len(branches) == 0 {
		return nil, nil
	}
	return &Details{MaxLen: maxLen, Branches: branches}, nil
}

// FindRemote resolves a short branch name to its remote ref. origin
// wins over other remotes; after that the first alphabetically,
// case-insensitive. Returns "" when no remote carries the branch.
func (l *Lister) FindRemote(ctx context.Context, name string) (string, error) {
	// Already a remote ref? Verify it exists.
	if strings.Contains(name, "/") {
		ok, err := l.runner.Quiet(ctx, "show-ref", "--verify", "--quiet", "refs/remotes/"+name)
		if err != nil {
			return "", err
		}
		if ok {
			return name, nil
		}
	}

	lines, err := l.runner.Lines(ctx, "for-each-ref", "--format=%(refname:short)", "refs/remotes/")
	if err != nil {
		return "", err
	}
	var matches []string
	for _, ref := range lines {
		if ref == "" || strings.HasSuffix(ref, "/HEAD") {
			continue
		}
		if _, short, ok := strings.Cut(ref, "/"); ok && short == name {
			matches = append(matches, ref)
		}
	}
	if len(matches) == 0 {
		return "", nil
	}
	for _, m := range matches {
		if strings.HasPrefix(m, "origin/") {
			return m, nil
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return strings.ToLower(matches[i]) < strings.ToLower(matches[j])
	})
	return matches[0], nil
}

// BashDeclare renders the listing as eval-ready declarations. The
// remote_refs array only appears when some branch has one.
func (d *Details) BashDeclare() string {
	names := make([]string, len(d.Branches))
	hashes := make([]string, len(d.Branches))
	tracks := make([]string, len(d.Branches))
	subjects := make([]string, len(d.Branches))
	remotes := make([]string, len(d.Branches))
	hasRemote := false
	for i, b := range d.Branches {
		names[i] = b.Name
		hashes[i] = b.Hash
		tracks[i] = b.Track
		subjects[i] = b.Subject
		remotes[i] = b.Remote
		if b.Remote != "" {
			hasRemote = true
		}
	}
	stmts := []string{
		bashout.Scalar("current_branch", d.CurrentBranch),
		fmt.Sprintf("declare max_len=%d", d.MaxLen),
		bashout.Array("branches", names),
		bashout.Array("hashes", hashes),
		bashout.Array("tracks", tracks),
		bashout.Array("subjects", subjects),
	}
	if hasRemote {
		stmts = append(stmts, bashout.Array("remote_refs", remotes))
	}
	return bashout.Lines(stmts...)
}
