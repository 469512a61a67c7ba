package analyze

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hug-scm/hug-tools/internal/gitcmd"
)

// ChurnCommit is one `%H|%an|%ai` entry of a file's history.
type ChurnCommit struct {
	Hash   string `json:"hash"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// FileChurn holds file-level churn metrics. FirstCommit is the oldest
// entry, LastCommit the newest. ChurnScore weights each change by
// exp(-days_ago/decay) so recent edits dominate.
type FileChurn struct {
	TotalCommits  int          `json:"total_commits"`
	UniqueAuthors int          `json:"unique_authors"`
	Authors       []string     `json:"authors"`
	FirstCommit   *ChurnCommit `json:"first_commit"`
	LastCommit    *ChurnCommit `json:"last_commit"`
	ChurnScore    float64      `json:"churn_score"`
}

// ChurnParams records the inputs alongside the result.
type ChurnParams struct {
	Since     string  `json:"since,omitempty"`
	DecayDays float64 `json:"decay_days"`
}

// ChurnReport is the JSON output of the churn subcommand.
type ChurnReport struct {
	File      string      `json:"file"`
	FileChurn *FileChurn  `json:"file_churn"`
	Params    ChurnParams `json:"analysis_params"`
}

// ChurnHistory fetches the follow-renames history of file.
func ChurnHistory(ctx context.Context, r *gitcmd.Runner, file, since string) ([]ChurnCommit, error) {
	args := []string{"log", "--follow", "--format=%H|%an|%ai"}
	if since != "" {
		args = append(args, "--since="+since)
	}
	args = append(args, "--", file)
	lines, err := r.Lines(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("getting history for %s: %w", file, err)
	}
	var commits []ChurnCommit
	for _, line := range lines {
		parts := strings.SplitN(line, "|", 3)
		if len(parts) < 3 {
			continue
		}
		commits = append(commits, ChurnCommit{Hash: parts[0], Author: parts[1], Date: parts[2]})
	}
	return commits, nil
}

// ComputeFileChurn aggregates a history into churn metrics. Commits
// arrive newest first, as git log emits them.
func ComputeFileChurn(commits []ChurnCommit, now time.Time, decayDays float64) *FileChurn {
	if len(commits) == 0 {
		return nil
	}
	authorSet := map[string]bool{}
	score := 0.0
	for _, c := range commits {
		authorSet[c.Author] = true
		if days, ok := daysAgo(c.Date, now); ok {
			score += math.Exp(-float64(days) / decayDays)
		}
	}
	authors := make([]string, 0, len(authorSet))
	for a := range authorSet {
		authors = append(authors, a)
	}
	sort.Strings(authors)

	first := commits[len(commits)-1]
	last := commits[0]
	return &FileChurn{
		TotalCommits:  len(commits),
		UniqueAuthors: len(authors),
		Authors:       authors,
		FirstCommit:   &first,
		LastCommit:    &last,
		ChurnScore:    score,
	}
}

// FormatChurnText renders the file-level metrics block.
func FormatChurnText(file string, fc *FileChurn) string {
	lines := []string{
		fmt.Sprintf("Churn analysis for: %s", file),
		"",
		"File-level metrics:",
		fmt.Sprintf("  Total commits: %d", fc.TotalCommits),
		fmt.Sprintf("  Unique authors: %d", fc.UniqueAuthors),
		fmt.Sprintf("  Churn score: %.2f", fc.ChurnScore),
	}
	if fc.FirstCommit != nil {
		lines = append(lines, fmt.Sprintf("  First changed: %s by %s", dateOnly(fc.FirstCommit.Date), fc.FirstCommit.Author))
	}
	if fc.LastCommit != nil {
		lines = append(lines, fmt.Sprintf("  Last changed: %s by %s", dateOnly(fc.LastCommit.Date), fc.LastCommit.Author))
	}
	return strings.Join(lines, "\n")
}

// daysAgo parses a git %ai date and returns whole days before now.
func daysAgo(date string, now time.Time) (int, bool) {
	t, err := time.Parse("2006-01-02 15:04:05 -0700", date)
	if err != nil {
		return 0, false
	}
	d := int(now.Sub(t).Hours() / 24)
	if d < 0 {
		d = 0
	}
	return d, true
}

func dateOnly(date string) string {
	if len(date) >= 10 {
		return date[:10]
	}
	return date
}
