// Package analyze implements the git history analytics behind the
// `hug analyze` family: temporal activity, file churn, co-change
// correlation, commit dependencies, and code ownership.
package analyze

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// ActivityCommit is one parsed `%ai|%an` log line.
type ActivityCommit struct {
	Timestamp string
	Author    string
	Hour      int
	Day       string
}

// dayOrder is the fixed weekday ordering of day reports.
var dayOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ParseActivityLog reads `timestamp|author` lines. Malformed lines are
// warned to warn and skipped; the timezone suffix of %ai is dropped
// before parsing.
func ParseActivityLog(r io.Reader, warn io.Writer) ([]ActivityCommit, error) {
	var commits []ActivityCommit
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ts, author, ok := strings.Cut(line, "|")
		if !ok {
			fmt.Fprintf(warn, "Warning: Could not parse line: %s\n", line)
			continue
		}
		// "2024-03-20 14:32:15 -0400" -> strip the zone.
		stamp := ts
		if i := strings.LastIndex(ts, " "); i != -1 {
			stamp = ts[:i]
		}
		dt, err := time.Parse("2006-01-02 15:04:05", stamp)
		if err != nil {
			fmt.Fprintf(warn, "Warning: Could not parse line: %s\n", line)
			continue
		}
		commits = append(commits, ActivityCommit{
			Timestamp: ts,
			Author:    strings.TrimSpace(author),
			Hour:      dt.Hour(),
			Day:       dt.Format("Mon"),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading activity input: %w", err)
	}
	return commits, nil
}

// Activity is one grouping result. Data holds map[int]int for hour
// groupings, map[string]int for day groupings, and author-keyed maps
// of those for the per-author variants.
type Activity struct {
	Type     string   `json:"type"`
	DayOrder []string `json:"day_order,omitempty"`
	Data     any      `json:"data"`
}

// ActivityReport is the JSON envelope for a single grouping.
type ActivityReport struct {
	CommitsAnalyzed int      `json:"commits_analyzed"`
	TimeRange       *string  `json:"time_range"`
	Analysis        Activity `json:"analysis"`
}

// ActivityBothReport is the JSON envelope of the default mode, which
// reports both groupings.
type ActivityBothReport struct {
	CommitsAnalyzed int      `json:"commits_analyzed"`
	TimeRange       *string  `json:"time_range"`
	ByHour          Activity `json:"by_hour"`
	ByDay           Activity `json:"by_day"`
}

// ByHour groups commits by hour of day, optionally split per author.
func ByHour(commits []ActivityCommit, byAuthor bool) Activity {
	if byAuthor {
		data := map[string]map[int]int{}
		for _, c := range commits {
			if data[c.Author] == nil {
				data[c.Author] = map[int]int{}
			}
			data[c.Author][c.Hour]++
		}
		return Activity{Type: "by_hour_and_author", Data: data}
	}
	data := map[int]int{}
	for _, c := range commits {
		data[c.Hour]++
	}
	return Activity{Type: "by_hour", Data: data}
}

// ByDay groups commits by day of week, optionally split per author.
func ByDay(commits []ActivityCommit, byAuthor bool) Activity {
	if byAuthor {
		data := map[string]map[string]int{}
		for _, c := range commits {
			if data[c.Author] == nil {
				data[c.Author] = map[string]int{}
			}
			data[c.Author][c.Day]++
		}
		return Activity{Type: "by_day_and_author", DayOrder: dayOrder, Data: data}
	}
	data := map[string]int{}
	for _, c := range commits {
		data[c.Day]++
	}
	return Activity{Type: "by_day", DayOrder: dayOrder, Data: data}
}

// DetectPatterns flags late-night and weekend work and reports the
// peak bucket. Thresholds: >5% of commits between 22:00 and 04:59,
// >10% on weekends.
func DetectPatterns(a Activity) []string {
	var obs []string
	switch a.Type {
	case "by_hour":
		data, ok := a.Data.(map[int]int)
		if !ok {
			return nil
		}
		lateNight, total := 0, 0
		for h, n := range data {
			total += n
			if h >= 22 || h <= 4 {
				lateNight += n
			}
		}
		if lateNight > 0 && total > 0 {
			if pct := float64(lateNight) / float64(total) * 100; pct > 5 {
				obs = append(obs, fmt.Sprintf("⚠️  %.1f%% of commits during late night (10pm-4am)", pct))
			}
		}
		if hour, count, ok := peakInt(data); ok {
			obs = append(obs, fmt.Sprintf("Peak activity: %02d:00 (%d commits)", hour, count))
		}
	case "by_day":
		data, ok := a.Data.(map[string]int)
		if !ok {
			return nil
		}
		weekend := data["Sat"] + data["Sun"]
		total := 0
		for _, n := range data {
			total += n
		}
		if weekend > 0 && total > 0 {
			if pct := float64(weekend) / float64(total) * 100; pct > 10 {
				obs = append(obs, fmt.Sprintf("⚠️  %.1f%% of commits on weekends", pct))
			}
		}
		if day, count, ok := peakDay(data); ok {
			obs = append(obs, fmt.Sprintf("Most active day: %s (%d commits)", day, count))
		}
	}
	return obs
}

// peakInt returns the busiest hour, lowest hour winning ties so the
// report is deterministic.
func peakInt(data map[int]int) (key, count int, ok bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	first := true
	for k, n := range data {
		if first || n > count || (n == count && k < key) {
			key, count, first = k, n, false
		}
	}
	return key, count, true
}

// peakDay returns the busiest day, earlier weekday winning ties.
func peakDay(data map[string]int) (key string, count int, ok bool) {
	for _, d := range dayOrder {
		n, present := data[d]
		if !present {
			continue
		}
		ok = true
		if n > count || key == "" {
			key, count = d, n
		}
	}
	return key, count, ok
}

// hourHistogram renders NN:00 bars scaled to the busiest bucket.
func hourHistogram(data map[int]int, maxWidth int) []string {
	if len(data) == 0 {
		return nil
	}
	maxCount := 0
	hours := make([]int, 0, len(data))
	for h, n := range data {
		hours = append(hours, h)
		if n > maxCount {
			maxCount = n
		}
	}
	sort.Ints(hours)
	var lines []string
	for _, h := range hours {
		n := data[h]
		lines = append(lines, fmt.Sprintf("%02d:00 %s %d", h, bar(n, maxCount, maxWidth), n))
	}
	return lines
}

// dayHistogram renders bars in weekday order, including empty days.
func dayHistogram(data map[string]int, maxWidth int) []string {
	if len(data) == 0 {
		return nil
	}
	maxCount := 0
	for _, n := range data {
		if n > maxCount {
			maxCount = n
		}
	}
	var lines []string
	for _, d := range dayOrder {
		n := data[d]
		lines = append(lines, fmt.Sprintf("%s %s %d", d, bar(n, maxCount, maxWidth), n))
	}
	return lines
}

func bar(count, maxCount, maxWidth int) string {
	if maxCount <= 0 {
		return ""
	}
	return strings.Repeat("█", count*maxWidth/maxCount)
}

// FormatActivityText renders one grouping as a titled histogram block
// with trailing observations.
func FormatActivityText(a Activity, commitCount int, timeRange string) string {
	var lines []string
	if timeRange != "" {
		lines = append(lines, fmt.Sprintf("Commit Activity Analysis (%s):", timeRange))
	} else {
		lines = append(lines, fmt.Sprintf("Commit Activity Analysis (%d commits):", commitCount))
	}
	lines = append(lines, "")

	switch a.Type {
	case "by_hour":
		lines = append(lines, "Commits by Hour:", "")
		lines = append(lines, hourHistogram(a.Data.(map[int]int), 40)...)
	case "by_day":
		lines = append(lines, "Commits by Day of Week:", "")
		lines = append(lines, dayHistogram(a.Data.(map[string]int), 40)...)
	case "by_hour_and_author":
		lines = append(lines, "Commits by Hour (per author):", "")
		data := a.Data.(map[string]map[int]int)
		for _, author := range sortedKeys(data) {
			lines = append(lines, author+":")
			for _, l := range hourHistogram(data[author], 35) {
				lines = append(lines, "  "+l)
			}
			lines = append(lines, "")
		}
	case "by_day_and_author":
		lines = append(lines, "Commits by Day (per author):", "")
		data := a.Data.(map[string]map[string]int)
		for _, author := range sortedKeys(data) {
			lines = append(lines, author+":")
			for _, l := range dayHistogram(data[author], 35) {
				lines = append(lines, "  "+l)
			}
			lines = append(lines, "")
		}
	}

	if obs := DetectPatterns(a); len(obs) > 0 {
		lines = append(lines, "", "Observations:")
		for _, o := range obs {
			lines = append(lines, "  "+o)
		}
	}
	return strings.Join(lines, "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
