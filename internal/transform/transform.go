// Package transform converts git's textual output into the JSON
// shapes the Hug SCM shell commands emit: status objects, simple
// commit arrays, and GitHub-compatible commit search envelopes.
package transform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hug-scm/hug-tools/internal/config"
	"github.com/hug-scm/hug-tools/internal/gitcmd"
	"github.com/hug-scm/hug-tools/internal/logjson"
	"github.com/hug-scm/hug-tools/internal/models"
	"github.com/hug-scm/hug-tools/internal/repo"
)

// LogFieldSep separates fields inside a NUL-delimited log record.
const LogFieldSep = "---HUG-FIELD-SEPARATOR---"

// StatusEntry is one path in a status listing.
type StatusEntry struct {
	Path   string `json:"path"`
	Status string `json:"status"`
}

// StatusSummary aggregates the status counts.
type StatusSummary struct {
	StagedCount    int  `json:"staged_count"`
	UnstagedCount  int  `json:"unstaged_count"`
	UntrackedCount int  `json:"untracked_count"`
	Clean          bool `json:"clean"`
}

// Status is the JSON shape of `git status --short`.
type Status struct {
	Staged    []StatusEntry `json:"staged"`
	Unstaged  []StatusEntry `json:"unstaged"`
	Untracked []StatusEntry `json:"untracked"`
	Summary   StatusSummary `json:"summary"`
}

var statusTypes = map[byte]string{
	'M': "modified",
	'A': "added",
	'D': "deleted",
	'R': "renamed",
	'C': "copied",
	'U': "conflict",
	'T': "type_changed",
}

func statusType(code byte) string {
	if t, ok := statusTypes[code]; ok {
		return t
	}
	return "unknown"
}

// ParseStatus converts `git status --short` output. Lines are not
// trimmed: the format is positional, column 1 is the index state,
// column 2 the worktree state, the path starts at column 4.
func ParseStatus(output string) Status {
	st := Status{
		Staged:    []StatusEntry{},
		Unstaged:  []StatusEntry{},
		Untracked: []StatusEntry{},
	}
	for _, line := range strings.Split(output, "\n") {
		if line == "" || len(line) < 2 {
			continue
		}
		code := line[:2]
		path := ""
		if len(line) > 3 {
			path = line[3:]
		}
		if c := code[0]; c != ' ' && c != '?' && c != '!' {
			st.Staged = append(st.Staged, StatusEntry{Path: path, Status: statusType(c)})
		}
		if c := code[1]; c != ' ' && c != '?' && c != '!' {
			st.Unstaged = append(st.Unstaged, StatusEntry{Path: path, Status: statusType(c)})
		}
		if code == "??" {
			st.Untracked = append(st.Untracked, StatusEntry{Path: path, Status: "untracked"})
		}
	}
	st.Summary = StatusSummary{
		StagedCount:    len(st.Staged),
		UnstagedCount:  len(st.Unstaged),
		UntrackedCount: len(st.Untracked),
		Clean:          len(st.Staged) == 0 && len(st.Unstaged) == 0,
	}
	return st
}

// SimpleCommit is the reduced commit shape of the NUL-record format.
type SimpleCommit struct {
	SHA      string          `json:"sha"`
	SHAShort string          `json:"sha_short"`
	Author   SimpleSignature `json:"author"`
	Date     string          `json:"date"`
	Message  string          `json:"message"`
	Files    json.RawMessage `json:"files,omitempty"`
}

// SimpleSignature is an identity without dates.
type SimpleSignature struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ParseLogRecords converts NUL-separated log records with the fixed
// field separator into simple commits. Records with fewer than six
// fields are skipped. withFiles keeps a seventh field of pre-encoded
// JSON file data.
func ParseLogRecords(output string, withFiles bool) []SimpleCommit {
	commits := []SimpleCommit{}
	for _, record := range strings.Split(strings.TrimSpace(output), "\x00") {
		if record == "" {
			continue
		}
		fields := strings.Split(record, LogFieldSep)
		if len(fields) < 6 {
			continue
		}
		c := SimpleCommit{
			SHA:      fields[0],
			SHAShort: fields[1],
			Author:   SimpleSignature{Name: fields[2], Email: fields[3]},
			Date:     fields[4],
			Message:  fields[5],
		}
		if withFiles && len(fields) > 6 {
			if fields[6] != "" && json.Valid([]byte(fields[6])) {
				c.Files = json.RawMessage(fields[6])
			} else {
				c.Files = json.RawMessage("[]")
			}
		}
		commits = append(commits, c)
	}
	return commits
}

// ValidateSchema checks JSON data for the required top-level keys of
// named output shapes. Unknown schema names pass.
func ValidateSchema(data []byte, schema string) bool {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	var required []string
	switch schema {
	case "status":
		required = []string{"repository", "status"}
	case "commit_search":
		required = []string{"repository", "search", "results"}
	case "branch_list":
		required = []string{"repository", "branches"}
	}
	for _, key := range required {
		if _, ok := doc[key]; !ok {
			return false
		}
	}
	return true
}

// SearchError is the error object of a failed search.
type SearchError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SearchMeta records what was searched.
type SearchMeta struct {
	Type         string `json:"type"`
	Term         string `json:"term"`
	WithFiles    bool   `json:"with_files"`
	ResultsCount int    `json:"results_count"`
}

// SearchResult is the commit search envelope.
type SearchResult struct {
	Error      *SearchError    `json:"error,omitempty"`
	Repository *RepositoryRef  `json:"repository,omitempty"`
	Timestamp  string          `json:"timestamp,omitempty"`
	Command    string          `json:"command,omitempty"`
	Version    string          `json:"version,omitempty"`
	Search     *SearchMeta     `json:"search,omitempty"`
	Commits    []models.Commit `json:"commits,omitempty"`
}

// RepositoryRef locates the repository in output envelopes.
type RepositoryRef struct {
	Path   string `json:"path"`
	Branch string `json:"branch,omitempty"`
}

// repositoryRef resolves the repository context for dir: the work
// tree root when dir sits inside a repository, dir itself otherwise,
// plus the current branch when one exists.
func repositoryRef(dir string) *RepositoryRef {
	ref := &RepositoryRef{Path: dir}
	if root, err := repo.Root(dir); err == nil {
		ref.Path = root
	}
	if branch, err := repo.Head(dir); err == nil {
		ref.Branch = branch
	}
	return ref
}

// SearchOptions configure CommitSearch.
type SearchOptions struct {
	Type      string // "message" or "code"
	Term      string
	WithFiles bool
	NoBody    bool
	ExtraArgs []string
}

// CommitSearch runs git log with --grep (message) or -S (code) in the
// standard 15-field format and parses the result. Git failures and
// invalid search types return an error envelope, not a Go error, so
// the shell always gets JSON.
func CommitSearch(ctx context.Context, r *gitcmd.Runner, opts SearchOptions) SearchResult {
	args := []string{"log", "--format=" + logjson.Format}
	if opts.WithFiles {
		args = append(args, "--numstat")
	}
	switch opts.Type {
	case "message":
		args = append(args, "--grep="+opts.Term)
	case "code":
		args = append(args, "-S"+opts.Term)
	default:
		return SearchResult{Error: &SearchError{
			Type:    "invalid_search_type",
			Message: `Search type must be "message" or "code"`,
		}}
	}
	args = append(args, opts.ExtraArgs...)

	out, err := r.Output(ctx, args...)
	if err != nil {
		msg := err.Error()
		var gitErr *gitcmd.GitError
		if errors.As(err, &gitErr) {
			msg = gitErr.Stderr
		}
		return SearchResult{Error: &SearchError{
			Type:    "git_error",
			Message: fmt.Sprintf("Git command failed: %s", msg),
		}}
	}

	commits, err := logjson.Parse(strings.NewReader(out), logjson.Options{
		IncludeStats: opts.WithFiles,
		OmitBody:     opts.NoBody,
	})
	if err != nil {
		return SearchResult{Error: &SearchError{Type: "parse_error", Message: err.Error()}}
	}

	command := "hug lf --json"
	if opts.Type == "code" {
		command = "hug lc --json"
	}
	dir := r.Dir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return SearchResult{
		Repository: repositoryRef(dir),
		Timestamp:  time.Now().Truncate(time.Second).Format(time.RFC3339),
		Command:    command,
		Version:    config.Version(),
		Search: &SearchMeta{
			Type:         opts.Type,
			Term:         opts.Term,
			WithFiles:    opts.WithFiles,
			ResultsCount: len(commits),
		},
		Commits: commits,
	}
}
