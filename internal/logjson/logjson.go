// Package logjson parses the hug log wire format into commit records.
//
// The shell side runs git log with a 15-field format joined by the
// |~| separator, optionally interleaved with --numstat output. The %B
// field spans lines, so a commit's metadata cannot be parsed
// line-by-line: lines accumulate until the next 40-hex commit header
// and the parent/refs trailer is recovered from the end of the block.
package logjson

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/hug-scm/hug-tools/internal/models"
)

// FieldSep joins the fields of the log format. Chosen by the shell
// tooling as a sequence that never appears in git metadata.
const FieldSep = "|~|"

// Format is the git log --format value the parser expects.
var Format = strings.Join([]string{
	"%H", "%h", "%an", "%ae", "%cn", "%ce",
	"%aI", "%ar", "%cI", "%cr",
	"%T", "%s", "%B", "%P", "%D",
}, FieldSep)

// minFields is the lowest field count accepted on a commit header
// line. %B spans lines, so a header carries fields 0-11 plus the
// first body line; the parent/refs trailer can land on a later line
// and is recovered from the accumulated block instead.
const minFields = 13

var commitHeaderRe = regexp.MustCompile(`^[0-9a-f]{40}\|~\|`)

// Options control which parts of each commit are emitted.
type Options struct {
	// IncludeStats attaches numstat totals and per-file changes.
	IncludeStats bool
	// OmitBody drops the body, leaving message = subject.
	OmitBody bool
}

// Parse reads git log output from r and returns the parsed commits.
// Incomplete commit header lines and malformed blocks are skipped;
// parsing never fails on content, only on read errors.
func Parse(r io.Reader, opts Options) ([]models.Commit, error) {
	commits := []models.Commit{}
	var current []string
	var numstats []string
	inNumstat := false

	flush := func() {
		if len(current) == 0 {
			return
		}
		if c := parseCommit(current, numstats, opts); c != nil {
			commits = append(commits, *c)
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\n")

		// A new commit header always wins, even mid-body; otherwise a
		// body containing hash-like text would swallow later commits.
		if commitHeaderRe.MatchString(line) {
			flush()
			current, numstats, inNumstat = nil, nil, false
			if strings.Count(line, FieldSep)+1 >= minFields {
				current = []string{line}
			}
			continue
		}
		if len(current) == 0 {
			continue
		}
		if strings.Contains(line, "\t") && !strings.Contains(line, FieldSep) {
			if len(strings.SplitN(line, "\t", 4)) >= 3 {
				numstats = append(numstats, line)
				inNumstat = true
				continue
			}
		}
		// Blank lines between the numstat block and the next commit
		// are separators, not body content.
		if !inNumstat || strings.TrimSpace(line) != "" {
			current = append(current, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading log input: %w", err)
	}
	flush()
	return commits, nil
}

// parseCommit parses one accumulated block. Returns nil on malformed
// input (missing fields or trailer).
func parseCommit(lines, numstats []string, opts Options) *models.Commit {
	if len(lines) == 0 {
		return nil
	}

	// The first line carries fields 0-11 plus the start of %B.
	fields := strings.SplitN(lines[0], FieldSep, 13)
	if len(fields) < 13 {
		return nil
	}

	fullText := strings.Join(lines, "\n")

	// The trailer is |~|parents|~|refs at the very end of the block.
	lastSep := strings.LastIndex(fullText, FieldSep)
	if lastSep == -1 {
		return nil
	}
	refsStr := strings.TrimSpace(fullText[lastSep+len(FieldSep):])
	remaining := fullText[:lastSep]
	secondLastSep := strings.LastIndex(remaining, FieldSep)
	if secondLastSep == -1 {
		return nil
	}
	parentsStr := strings.TrimSpace(remaining[secondLastSep+len(FieldSep):])

	prefix := strings.Join(fields[:12], FieldSep) + FieldSep
	bodyFull := fullText[len(prefix):secondLastSep]

	subject := fields[11]
	var body string
	if parts := strings.SplitN(strings.TrimSpace(bodyFull), "\n", 2); len(parts) > 1 {
		body = strings.TrimSpace(parts[1])
	}

	// Refs containing tabs are numstat contamination, not refs.
	var refs []string
	if refsStr != "" && !strings.Contains(refsStr, "\t") {
		for _, ref := range strings.Split(refsStr, ",") {
			ref = strings.TrimSpace(ref)
			if from, to, ok := strings.Cut(ref, " -> "); ok {
				refs = append(refs, strings.TrimSpace(from), strings.TrimSpace(to))
			} else {
				refs = append(refs, ref)
			}
		}
	}

	parents := []models.ParentRef{}
	for _, sha := range strings.Fields(parentsStr) {
		parents = append(parents, models.ParentRef{SHA: sha})
	}

	stats := models.Stats{}
	files := []models.FileChange{}
	for _, ns := range numstats {
		parts := strings.SplitN(ns, "\t", 4)
		if len(parts) < 3 {
			continue
		}
		add, delete, ok := parseNumstatCounts(parts[0], parts[1])
		if !ok {
			continue
		}
		stats.Insertions += add
		stats.Deletions += delete
		stats.FilesChanged++
		files = append(files, models.FileChange{
			Filename:  parts[2],
			Status:    "modified",
			Additions: add,
			Deletions: delete,
			Changes:   add + delete,
		})
	}

	var bodyPtr *string
	message := subject
	if body != "" && !opts.OmitBody {
		bodyPtr = &body
		message = subject + "\n\n" + body
	}

	c := &models.Commit{
		SHA:      fields[0],
		SHAShort: fields[1],
		Author: models.Signature{
			Name:         fields[2],
			Email:        fields[3],
			Date:         fields[6],
			DateRelative: fields[7],
		},
		Committer: models.Signature{
			Name:         fields[4],
			Email:        fields[5],
			Date:         fields[8],
			DateRelative: fields[9],
		},
		Message: message,
		Subject: subject,
		Body:    bodyPtr,
		Tree:    models.TreeRef{SHA: fields[10]},
		Parents: parents,
		Refs:    refs,
	}
	if opts.IncludeStats {
		c.Stats = &stats
		c.Files = &files
	}
	return c
}

// parseNumstatCounts converts one numstat pair; "-" marks a binary
// file and counts as zero.
func parseNumstatCounts(addStr, delStr string) (add, delete int, ok bool) {
	var err error
	if addStr != "-" {
		if add, err = strconv.Atoi(addStr); err != nil {
			return 0, 0, false
		}
	}
	if delStr != "-" {
		if delete, err = strconv.Atoi(delStr); err != nil {
			return 0, 0, false
		}
	}
	return add, delete, true
}

// Summary describes the parsed commit set.
type Summary struct {
	TotalCommits int        `json:"total_commits"`
	DateRange    *DateRange `json:"date_range,omitempty"`
}

// DateRange brackets the author dates of the set.
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// Output is the JSON envelope emitted by the log subcommands.
type Output struct {
	Command string          `json:"command"`
	Commits []models.Commit `json:"commits"`
	Summary Summary         `json:"summary"`
}

// NewOutput wraps commits in the standard envelope, computing the
// author date range over ISO-8601 strings (lexical order suffices).
func NewOutput(command string, commits []models.Commit) Output {
	if commits == nil {
		commits = []models.Commit{}
	}
	out := Output{
		Command: command,
		Commits: commits,
		Summary: Summary{TotalCommits: len(commits)},
	}
	if len(commits) > 0 {
		earliest, latest := commits[0].Author.Date, commits[0].Author.Date
		for _, c := range commits[1:] {
			if c.Author.Date < earliest {
				earliest = c.Author.Date
			}
			if c.Author.Date > latest {
				latest = c.Author.Date
			}
		}
		out.Summary.DateRange = &DateRange{Earliest: earliest, Latest: latest}
	}
	return out
}
