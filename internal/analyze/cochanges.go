package analyze

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Correlation is one co-changing file pair. Pairs are ordered so
// FileA < FileB lexically.
type Correlation struct {
	FileA       string  `json:"file_a"`
	FileB       string  `json:"file_b"`
	Correlation float64 `json:"correlation"`
	CoChanges   int     `json:"co_changes"`
	ChangesA    int     `json:"changes_a"`
	ChangesB    int     `json:"changes_b"`
}

// CoChangeReport is the JSON output of the co-changes subcommand.
type CoChangeReport struct {
	CommitsAnalyzed int           `json:"commits_analyzed"`
	Threshold       float64       `json:"threshold"`
	TotalPairs      int           `json:"total_pairs"`
	Correlations    []Correlation `json:"correlations"`
}

// ParseNameOnlyLog reads `git log --name-only --format=%H` output into
// per-commit file sets. A 40-hex line or a blank line closes the
// current commit.
func ParseNameOnlyLog(r io.Reader) ([]map[string]bool, error) {
	var commits []map[string]bool
	current := map[string]bool{}

	flush := func() {
		if len(current) > 0 {
			commits = append(commits, current)
			current = map[string]bool{}
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			flush()
		case isCommitHash(line):
			flush()
		default:
			current[line] = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading name-only log: %w", err)
	}
	flush()
	return commits, nil
}

func isCommitHash(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// CoChangeCorrelations builds the co-occurrence matrix over all file
// pairs and returns correlations at or above threshold, strongest
// first. Correlation = co_changes / min(changes_a, changes_b): when
// the less-changed file changes, how often does the other follow.
func CoChangeCorrelations(commits []map[string]bool, threshold float64) []Correlation {
	type pair struct{ a, b string }
	coMatrix := map[pair]int{}
	fileCounts := map[string]int{}

	for _, fileSet := range commits {
		files := make([]string, 0, len(fileSet))
		for f := range fileSet {
			fileCounts[f]++
			files = append(files, f)
		}
		sort.Strings(files)
		for i := 0; i < len(files); i++ {
			for j := i + 1; j < len(files); j++ {
				coMatrix[pair{files[i], files[j]}]++
			}
		}
	}

	var correlations []Correlation
	for p, co := range coMatrix {
		countA, countB := fileCounts[p.a], fileCounts[p.b]
		corr := float64(co) / float64(min(countA, countB))
		if corr >= threshold {
			correlations = append(correlations, Correlation{
				FileA:       p.a,
				FileB:       p.b,
				Correlation: corr,
				CoChanges:   co,
				ChangesA:    countA,
				ChangesB:    countB,
			})
		}
	}
	sort.Slice(correlations, func(i, j int) bool {
		if correlations[i].Correlation != correlations[j].Correlation {
			return correlations[i].Correlation > correlations[j].Correlation
		}
		if correlations[i].FileA != correlations[j].FileA {
			return correlations[i].FileA < correlations[j].FileA
		}
		return correlations[i].FileB < correlations[j].FileB
	})
	return correlations
}

// FormatCoChangesText groups pairs by coupling strength with an
// interpretation footer.
func FormatCoChangesText(correlations []Correlation, threshold float64, totalCommits int) string {
	lines := []string{
		fmt.Sprintf("Co-change Analysis (last %d commits, ≥%.0f%% correlation):", totalCommits, threshold*100),
		"",
	}

	if len(correlations) == 0 {
		lines = append(lines,
			"No file pairs found above threshold.",
			"",
			"Try:",
			"  - Lowering --threshold (e.g., 0.20)",
			"  - Increasing --commits (e.g., 200)",
		)
		return strings.Join(lines, "\n")
	}

	var high, medium, low []Correlation
	for _, c := range correlations {
		switch {
		case c.Correlation >= 0.60:
			high = append(high, c)
		case c.Correlation >= 0.40:
			medium = append(medium, c)
		default:
			low = append(low, c)
		}
	}

	pairDetail := func(c Correlation) []string {
		return []string{
			fmt.Sprintf("  %s ↔ %s", c.FileA, c.FileB),
			fmt.Sprintf("    %.0f%% correlation (%d/%d commits)",
				c.Correlation*100, c.CoChanges, min(c.ChangesA, c.ChangesB)),
		}
	}

	if len(high) > 0 {
		lines = append(lines, "Strong coupling (≥60%):")
		for _, c := range high {
			lines = append(lines, pairDetail(c)...)
		}
		lines = append(lines, "")
	}
	if len(medium) > 0 {
		lines = append(lines, "Moderate coupling (40-60%):")
		for _, c := range medium {
			lines = append(lines, pairDetail(c)...)
		}
		lines = append(lines, "")
	}
	if len(low) > 0 {
		lines = append(lines, "Weak coupling (<40%):")
		shown := low
		if len(shown) > 10 {
			shown = shown[:10]
		}
		for _, c := range shown {
			lines = append(lines, fmt.Sprintf("  %s ↔ %s (%.0f%%)", c.FileA, c.FileB, c.Correlation*100))
		}
		if len(low) > 10 {
			lines = append(lines, fmt.Sprintf("  ... and %d more pairs", len(low)-10))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"Interpretation:",
		"  High correlation = Files likely architecturally coupled",
		"  Consider: Co-locate, refactor into module, or document dependency",
	)
	return strings.Join(lines, "\n")
}
