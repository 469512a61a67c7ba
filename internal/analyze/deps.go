package analyze

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hug-scm/hug-tools/internal/gitcmd"
	"github.com/hug-scm/hug-tools/internal/jsonx"
)

// truncate shortens s to at most n runes so multi-byte subjects are
// never cut mid-character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// CommitFileSource is where the deps analyzer stores known
// commit-to-files mappings between runs. *depcache.Cache satisfies it.
type CommitFileSource interface {
	Files(sha string) (files []string, ok bool, err error)
	Put(sha string, files []string) error
}

// CommitInfo is the metadata shown for a commit in deps reports.
type CommitInfo struct {
	Hash     string `json:"hash"`
	FullHash string `json:"full_hash"`
	Subject  string `json:"subject"`
	Author   string `json:"author"`
	Date     string `json:"date"`
}

// Related pairs a commit with its file overlap against the root.
type Related struct {
	Hash    string
	Overlap int
}

// Deps analyzes commit relatedness via file overlap. Commit info and
// file sets are memoized in memory; the file sets additionally go
// through an optional persistent cache so repeated runs skip
// diff-tree for known commits.
type Deps struct {
	runner    *gitcmd.Runner
	cache     CommitFileSource
	infoMemo  map[string]*CommitInfo
	filesMemo map[string][]string
	fileIndex map[string][]string
}

// NewDeps returns an analyzer. cache may be nil.
func NewDeps(r *gitcmd.Runner, cache CommitFileSource) *Deps {
	return &Deps{
		runner:    r,
		cache:     cache,
		infoMemo:  map[string]*CommitInfo{},
		filesMemo: map[string][]string{},
	}
}

// AllCommits lists every commit across all refs, newest first.
func (d *Deps) AllCommits(ctx context.Context, since string) ([]string, error) {
	args := []string{"log", "--all", "--format=%H"}
	if since != "" {
		args = append(args, "--since="+since)
	}
	return d.runner.Lines(ctx, args...)
}

// RepoSizeTier buckets a repository by commit count for cap selection.
func RepoSizeTier(commitCount int) string {
	switch {
	case commitCount < 100:
		return "small"
	case commitCount < 1000:
		return "medium"
	case commitCount < 10000:
		return "large"
	default:
		return "massive"
	}
}

// MaxCommitsForTier is the processed-commit cap per tier.
func MaxCommitsForTier(tier string) int {
	switch tier {
	case "small":
		return 500
	case "medium":
		return 1000
	case "large":
		return 2000
	default:
		return 5000
	}
}

// Info fetches commit metadata, memoized. Returns nil, nil for an
// unknown commit.
func (d *Deps) Info(ctx context.Context, sha string) (*CommitInfo, error) {
	if info, ok := d.infoMemo[sha]; ok {
		return info, nil
	}
	out, err := d.runner.Output(ctx, "log", "-1", "--format=%H|%s|%an|%ai", sha)
	if err != nil || out == "" {
		// An unknown hash is an answer, not a failure.
		d.infoMemo[sha] = nil
		return nil, nil
	}
	parts := strings.SplitN(out, "|", 4)
	if len(parts) < 4 {
		d.infoMemo[sha] = nil
		return nil, nil
	}
	info := &CommitInfo{
		Hash:     parts[0][:7],
		FullHash: parts[0],
		Subject:  parts[1],
		Author:   parts[2],
		Date:     dateOnly(parts[3]),
	}
	d.infoMemo[sha] = info
	return info, nil
}

// Files lists the paths a commit touched, via the persistent cache
// when available, else `git diff-tree` (--root handles the initial
// commit).
func (d *Deps) Files(ctx context.Context, sha string) ([]string, error) {
	if files, ok := d.filesMemo[sha]; ok {
		return files, nil
	}
	if d.cache != nil {
		if files, ok, err := d.cache.Files(sha); err == nil && ok {
			d.filesMemo[sha] = files
			return files, nil
		}
	}
	lines, err := d.runner.Lines(ctx, "diff-tree", "--no-commit-id", "--name-only", "-r", "--root", sha)
	if err != nil {
		return nil, fmt.Errorf("listing files of %s: %w", sha, err)
	}
	var files []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			files = append(files, l)
		}
	}
	d.filesMemo[sha] = files
	if d.cache != nil {
		if err := d.cache.Put(sha, files); err != nil {
			return files, fmt.Errorf("caching files of %s: %w", sha, err)
		}
	}
	return files, nil
}

// BuildFileIndex maps each file to the commits touching it.
func (d *Deps) BuildFileIndex(ctx context.Context, commits []string) error {
	d.fileIndex = map[string][]string{}
	for _, sha := range commits {
		files, err := d.Files(ctx, sha)
		if err != nil {
			return err
		}
		for _, f := range files {
			d.fileIndex[f] = append(d.fileIndex[f], sha)
		}
	}
	return nil
}

// RelatedCommits finds commits sharing at least threshold files with
// sha, sorted by overlap descending (hash ascending on ties).
func (d *Deps) RelatedCommits(ctx context.Context, sha string, threshold int) ([]Related, error) {
	targetFiles, err := d.Files(ctx, sha)
	if err != nil {
		return nil, err
	}
	overlaps := map[string]int{}
	for _, f := range targetFiles {
		for _, other := range d.fileIndex[f] {
			if other != sha {
				overlaps[other]++
			}
		}
	}
	var related []Related
	for other, n := range overlaps {
		if n >= threshold {
			related = append(related, Related{Hash: other, Overlap: n})
		}
	}
	sort.Slice(related, func(i, j int) bool {
		if related[i].Overlap != related[j].Overlap {
			return related[i].Overlap > related[j].Overlap
		}
		return related[i].Hash < related[j].Hash
	})
	return related, nil
}

// GraphParams bound the BFS traversal.
type GraphParams struct {
	Depth      int
	Threshold  int
	MaxResults int
	MaxCommits int
}

// BuildGraph walks related commits breadth-first from root, bounded
// by depth and the processed-commit cap.
func (d *Deps) BuildGraph(ctx context.Context, root string, p GraphParams) (map[string][]Related, error) {
	graph := map[string][]Related{}
	visited := map[string]bool{}
	type item struct {
		sha   string
		depth int
	}
	queue := []item{{root, 0}}
	processed := 0

	for len(queue) > 0 && processed < p.MaxCommits {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur.sha] {
			continue
		}
		visited[cur.sha] = true
		processed++

		related, err := d.RelatedCommits(ctx, cur.sha, p.Threshold)
		if err != nil {
			return nil, err
		}
		if len(related) > p.MaxResults {
			related = related[:p.MaxResults]
		}
		graph[cur.sha] = related

		if cur.depth < p.Depth {
			for _, r := range related {
				if !visited[r.Hash] && len(queue) < p.MaxCommits {
					queue = append(queue, item{r.Hash, cur.depth + 1})
				}
			}
		}
	}
	return graph, nil
}

// AnalyzeAll finds the related set of every commit, for the
// repository-wide coupling report.
func (d *Deps) AnalyzeAll(ctx context.Context, commits []string, threshold, maxResults int) (map[string][]Related, error) {
	coupling := map[string][]Related{}
	for _, sha := range commits {
		related, err := d.RelatedCommits(ctx, sha, threshold)
		if err != nil {
			return nil, err
		}
		if len(related) == 0 {
			continue
		}
		if len(related) > maxResults {
			related = related[:maxResults]
		}
		coupling[sha] = related
	}
	return coupling, nil
}

// FormatGraph renders the first level of the graph as an ASCII tree.
func (d *Deps) FormatGraph(ctx context.Context, root string, graph map[string][]Related, depth int) (string, error) {
	info, err := d.Info(ctx, root)
	if err != nil {
		return "", err
	}
	if info == nil {
		return fmt.Sprintf("Error: Commit %s not found", root), nil
	}
	files, err := d.Files(ctx, root)
	if err != nil {
		return "", err
	}

	lines := []string{
		fmt.Sprintf("Dependency graph for commit %s:", info.Hash),
		info.Subject,
		fmt.Sprintf("Author: %s, Date: %s", info.Author, info.Date),
		fmt.Sprintf("Files modified: %d", len(files)),
		"",
	}
	related := graph[root]
	if len(related) == 0 {
		lines = append(lines, "No related commits found (no file overlap above threshold).")
		return strings.Join(lines, "\n"), nil
	}

	lines = append(lines, fmt.Sprintf("Related commits (depth=%d):", depth), "")
	for i, r := range related {
		rInfo, err := d.Info(ctx, r.Hash)
		if err != nil {
			return "", err
		}
		if rInfo == nil {
			continue
		}
		connector, cont := "├─", "│  "
		if i == len(related)-1 {
			connector, cont = "└─", "   "
		}
		lines = append(lines,
			fmt.Sprintf("%s %s (%d files) %s", connector, rInfo.Hash, r.Overlap, rInfo.Subject),
			fmt.Sprintf("%s   %s, %s", cont, rInfo.Author, rInfo.Date),
		)
	}
	return strings.Join(lines, "\n"), nil
}

// FormatList renders the root's related commits as a flat list.
func (d *Deps) FormatList(ctx context.Context, root string, graph map[string][]Related) (string, error) {
	info, err := d.Info(ctx, root)
	if err != nil {
		return "", err
	}
	if info == nil {
		return fmt.Sprintf("Error: Commit %s not found", root), nil
	}
	lines := []string{fmt.Sprintf("Related commits for %s (%s):", info.Hash, info.Subject), ""}
	related := graph[root]
	if len(related) == 0 {
		lines = append(lines, "No related commits found.")
		return strings.Join(lines, "\n"), nil
	}
	for _, r := range related {
		rInfo, err := d.Info(ctx, r.Hash)
		if err != nil {
			return "", err
		}
		if rInfo == nil {
			continue
		}
		subject := truncate(rInfo.Subject, 60)
		lines = append(lines, fmt.Sprintf("%s  %-60s  (%d files)  %s", rInfo.Hash, subject, r.Overlap, rInfo.Date))
	}
	return strings.Join(lines, "\n"), nil
}

// RelatedJSON is one related commit in JSON output.
type RelatedJSON struct {
	Hash        string `json:"hash"`
	FullHash    string `json:"full_hash"`
	Subject     string `json:"subject"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	FileOverlap int    `json:"file_overlap"`
}

// DepsNode is one graph node in JSON output.
type DepsNode struct {
	Info    *CommitInfo   `json:"info"`
	Related []RelatedJSON `json:"related"`
}

// FormatJSON renders the whole graph as JSON.
func (d *Deps) FormatJSON(ctx context.Context, root string, graph map[string][]Related) (string, error) {
	result := struct {
		RootCommit   string              `json:"root_commit"`
		Dependencies map[string]DepsNode `json:"dependencies"`
	}{RootCommit: root, Dependencies: map[string]DepsNode{}}

	for sha, related := range graph {
		info, err := d.Info(ctx, sha)
		if err != nil {
			return "", err
		}
		if info == nil {
			continue
		}
		node := DepsNode{Info: info, Related: []RelatedJSON{}}
		for _, r := range related {
			rInfo, err := d.Info(ctx, r.Hash)
			if err != nil {
				return "", err
			}
			if rInfo == nil {
				continue
			}
			node.Related = append(node.Related, RelatedJSON{
				Hash:        rInfo.Hash,
				FullHash:    rInfo.FullHash,
				Subject:     rInfo.Subject,
				Author:      rInfo.Author,
				Date:        rInfo.Date,
				FileOverlap: r.Overlap,
			})
		}
		result.Dependencies[sha] = node
	}
	out, err := jsonx.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// CouplingNode is one commit in the repository-wide coupling JSON.
type CouplingNode struct {
	Info         *CommitInfo   `json:"info"`
	RelatedCount int           `json:"related_count"`
	TopRelated   []RelatedJSON `json:"top_related"`
}

// FormatCoupling renders the repository-wide analysis as JSON or text.
func (d *Deps) FormatCoupling(ctx context.Context, coupling map[string][]Related, threshold int, asJSON bool) (string, error) {
	if asJSON {
		result := struct {
			Threshold int                     `json:"threshold"`
			Total     int                     `json:"total_commits_with_dependencies"`
			Coupling  map[string]CouplingNode `json:"coupling"`
		}{Threshold: threshold, Total: len(coupling), Coupling: map[string]CouplingNode{}}

		for sha, related := range coupling {
			info, err := d.Info(ctx, sha)
			if err != nil {
				return "", err
			}
			if info == nil {
				continue
			}
			node := CouplingNode{Info: info, RelatedCount: len(related), TopRelated: []RelatedJSON{}}
			top := related
			if len(top) > 5 {
				top = top[:5]
			}
			for _, r := range top {
				rInfo, err := d.Info(ctx, r.Hash)
				if err != nil {
					return "", err
				}
				if rInfo == nil {
					continue
				}
				node.TopRelated = append(node.TopRelated, RelatedJSON{
					Hash:        rInfo.Hash,
					Subject:     rInfo.Subject,
					FileOverlap: r.Overlap,
				})
			}
			result.Coupling[sha] = node
		}
		out, err := jsonx.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	lines := []string{
		fmt.Sprintf("Commit Coupling Analysis (threshold: %d files):", threshold),
		"",
		fmt.Sprintf("Found %d commits with dependencies", len(coupling)),
		"",
	}

	// Busiest commits first: most related, biggest overlap on ties.
	type entry struct {
		sha     string
		related []Related
	}
	sorted := make([]entry, 0, len(coupling))
	for sha, related := range coupling {
		sorted = append(sorted, entry{sha, related})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i].related) != len(sorted[j].related) {
			return len(sorted[i].related) > len(sorted[j].related)
		}
		mi, mj := 0, 0
		if len(sorted[i].related) > 0 {
			mi = sorted[i].related[0].Overlap
		}
		if len(sorted[j].related) > 0 {
			mj = sorted[j].related[0].Overlap
		}
		if mi != mj {
			return mi > mj
		}
		return sorted[i].sha < sorted[j].sha
	})

	shown := sorted
	if len(shown) > 20 {
		shown = shown[:20]
	}
	for _, e := range shown {
		info, err := d.Info(ctx, e.sha)
		if err != nil {
			return "", err
		}
		if info == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", info.Hash, info.Subject))
		lines = append(lines, fmt.Sprintf("  %d related commits:", len(e.related)))
		top := e.related
		if len(top) > 5 {
			top = top[:5]
		}
		for _, r := range top {
			rInfo, err := d.Info(ctx, r.Hash)
			if err != nil {
				return "", err
			}
			if rInfo == nil {
				continue
			}
			subject := truncate(rInfo.Subject, 50)
			lines = append(lines, fmt.Sprintf("    %s (%d files) %s", rInfo.Hash, r.Overlap, subject))
		}
		if len(e.related) > 5 {
			lines = append(lines, fmt.Sprintf("    ... and %d more", len(e.related)-5))
		}
		lines = append(lines, "")
	}
	if len(sorted) > 20 {
		lines = append(lines, fmt.Sprintf("... and %d more commits", len(sorted)-20))
	}
	return strings.Join(lines, "\n"), nil
}
