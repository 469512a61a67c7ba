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

// OwnershipCommit is one file-history entry with its age in days.
type OwnershipCommit struct {
	Hash    string
	Author  string
	Date    string
	DaysAgo int
}

// Ownership is one author's stake in a file. WeightedScore sums
// exp(-days_ago/decay) over the author's commits; OwnershipPct is the
// share of the total weighted score.
type Ownership struct {
	Author         string  `json:"author"`
	RawCommits     int     `json:"raw_commits"`
	WeightedScore  float64 `json:"weighted_score"`
	OwnershipPct   float64 `json:"ownership_pct"`
	Classification string  `json:"classification"`
	LastCommitDays int     `json:"last_commit_days"`
}

// OwnershipReport is the JSON output of file mode.
type OwnershipReport struct {
	File         string      `json:"file"`
	TotalCommits int         `json:"total_commits"`
	DecayDays    float64     `json:"decay_days"`
	Ownership    []Ownership `json:"ownership"`
}

// AuthorFile is one entry of author expertise mode.
type AuthorFile struct {
	Path    string `json:"path"`
	Commits int    `json:"commits"`
}

// AuthorReport is the JSON output of author mode.
type AuthorReport struct {
	Author     string       `json:"author"`
	TotalFiles int          `json:"total_files"`
	Files      []AuthorFile `json:"files"`
}

// staleDays marks an owner as stale when their last commit is older.
const staleDays = 180

// OwnershipHistory fetches the follow-renames history of file with
// commit ages relative to now.
func OwnershipHistory(ctx context.Context, r *gitcmd.Runner, file, since string, now time.Time) ([]OwnershipCommit, error) {
	args := []string{"log", "--follow", "--format=%H|%an|%ai"}
	if since != "" {
		args = append(args, "--since="+since)
	}
	args = append(args, "--", file)
	lines, err := r.Lines(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("getting file history: %w", err)
	}
	var commits []OwnershipCommit
	for _, line := range lines {
		parts := strings.SplitN(line, "|", 3)
		if len(parts) < 3 {
			continue
		}
		days, _ := daysAgo(parts[2], now)
		commits = append(commits, OwnershipCommit{
			Hash:    parts[0],
			Author:  parts[1],
			Date:    dateOnly(parts[2]),
			DaysAgo: days,
		})
	}
	return commits, nil
}

// ComputeOwnership aggregates a file history into per-author stakes,
// sorted by ownership percentage. Classification: primary >=40%,
// secondary >=20%, else historical.
func ComputeOwnership(commits []OwnershipCommit, decayDays float64) []Ownership {
	type acc struct {
		raw      int
		weighted float64
		lastDays int
	}
	authors := map[string]*acc{}
	for _, c := range commits {
		a := authors[c.Author]
		if a == nil {
			a = &acc{lastDays: c.DaysAgo}
			authors[c.Author] = a
		}
		a.raw++
		a.weighted += math.Exp(-float64(c.DaysAgo) / decayDays)
		if c.DaysAgo < a.lastDays {
			a.lastDays = c.DaysAgo
		}
	}

	total := 0.0
	for _, a := range authors {
		total += a.weighted
	}
	if total == 0 {
		return nil
	}

	ownership := make([]Ownership, 0, len(authors))
	for author, a := range authors {
		pct := a.weighted / total * 100
		classification := "historical"
		switch {
		case pct >= 40:
			classification = "primary"
		case pct >= 20:
			classification = "secondary"
		}
		ownership = append(ownership, Ownership{
			Author:         author,
			RawCommits:     a.raw,
			WeightedScore:  a.weighted,
			OwnershipPct:   pct,
			Classification: classification,
			LastCommitDays: a.lastDays,
		})
	}
	sort.Slice(ownership, func(i, j int) bool {
		if ownership[i].OwnershipPct != ownership[j].OwnershipPct {
			return ownership[i].OwnershipPct > ownership[j].OwnershipPct
		}
		return ownership[i].Author < ownership[j].Author
	})
	return ownership
}

// AuthorFiles maps each file the author touched to a commit count,
// parsed from `git log --all --name-only --author=<name> --format=%H`.
func AuthorFiles(ctx context.Context, r *gitcmd.Runner, author, since string) (map[string]int, error) {
	args := []string{"log", "--all", "--name-only", "--author=" + author, "--format=%H"}
	if since != "" {
		args = append(args, "--since="+since)
	}
	lines, err := r.Lines(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("getting author files: %w", err)
	}
	return ParseAuthorFiles(lines), nil
}

// ParseAuthorFiles counts file lines between commit hash lines.
func ParseAuthorFiles(lines []string) map[string]int {
	counts := map[string]int{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isCommitHash(strings.ToLower(line)) {
			continue
		}
		counts[line]++
	}
	return counts
}

// SortedAuthorFiles orders by commit count descending, path ascending
// on ties.
func SortedAuthorFiles(files map[string]int) []AuthorFile {
	sorted := make([]AuthorFile, 0, len(files))
	for path, count := range files {
		sorted = append(sorted, AuthorFile{Path: path, Commits: count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Commits != sorted[j].Commits {
			return sorted[i].Commits > sorted[j].Commits
		}
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

// FormatDaysAgo humanizes a day count the way the shell reports do.
func FormatDaysAgo(days int) string {
	plural := func(n int, unit string) string {
		if n > 1 {
			return fmt.Sprintf("%d %ss ago", n, unit)
		}
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return plural(days/7, "week")
	case days < 365:
		return plural(days/30, "month")
	default:
		return plural(days/365, "year")
	}
}

// FormatOwnershipText groups owners by classification, flagging stale
// maintainers.
func FormatOwnershipText(file string, ownership []Ownership) string {
	lines := []string{fmt.Sprintf("Experts for %s:", file), ""}

	groups := []struct {
		class  string
		single string
		plural string
	}{
		{"primary", "Primary maintainer:", "Primary maintainers:"},
		{"secondary", "Secondary:", "Secondary:"},
		{"historical", "Historical:", "Historical:"},
	}
	for gi, g := range groups {
		var members []Ownership
		for _, o := range ownership {
			if o.Classification == g.class {
				members = append(members, o)
			}
		}
		if len(members) == 0 {
			continue
		}
		header := g.plural
		if len(members) == 1 {
			header = g.single
		}
		lines = append(lines, header)
		for _, o := range members {
			stale := ""
			if o.LastCommitDays > staleDays {
				stale = " ⚠️  Stale"
			}
			lines = append(lines, fmt.Sprintf("  %s (%.0f%%, %d commits, last: %s)%s",
				o.Author, o.OwnershipPct, o.RawCommits, FormatDaysAgo(o.LastCommitDays), stale))
		}
		if gi < len(groups)-1 {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// FormatAuthorExpertiseText lists the author's top 20 files.
func FormatAuthorExpertiseText(author string, files map[string]int) string {
	lines := []string{fmt.Sprintf("%s's expertise areas:", author), ""}
	if len(files) == 0 {
		lines = append(lines, "No files found.")
		return strings.Join(lines, "\n")
	}
	sorted := SortedAuthorFiles(files)
	shown := sorted
	if len(shown) > 20 {
		shown = shown[:20]
	}
	for i, f := range shown {
		lines = append(lines, fmt.Sprintf("%2d. %-50s (%d commits)", i+1, f.Path, f.Commits))
	}
	if len(sorted) > 20 {
		lines = append(lines, "", fmt.Sprintf("... and %d more files", len(sorted)-20))
	}
	return strings.Join(lines, "\n")
}
