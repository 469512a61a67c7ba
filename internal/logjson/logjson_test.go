package logjson

import (
	"strings"
	"testing"
)

const (
	shaA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	shaB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	shaP = "cccccccccccccccccccccccccccccccccccccccc"
)

func commitLine(sha, subject, body, parents, refs string) string {
	fields := []string{
		sha, sha[:7],
		"Ada Lovelace", "ada@example.com",
		"Ada Lovelace", "ada@example.com",
		"2026-08-01T10:00:00+00:00", "2 weeks ago",
		"2026-08-01T10:00:00+00:00", "2 weeks ago",
		"treesha", subject,
	}
	b := subject
	if body != "" {
		b += "\n" + body
	}
	return strings.Join(fields, FieldSep) + FieldSep + b + FieldSep + parents + FieldSep + refs
}

func TestParseSingleCommit(t *testing.T) {
	input := commitLine(shaA, "Fix the thing", "", shaP, "HEAD -> main, origin/main")
	commits, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("got %d commits, want 1", len(commits))
	}
	c := commits[0]
	if c.SHA != shaA || c.SHAShort != shaA[:7] {
		t.Errorf("sha = %s/%s", c.SHA, c.SHAShort)
	}
	if c.Author.Name != "Ada Lovelace" || c.Author.Email != "ada@example.com" {
		t.Errorf("author = %+v", c.Author)
	}
	if c.Subject != "Fix the thing" || c.Message != "Fix the thing" {
		t.Errorf("subject/message = %q/%q", c.Subject, c.Message)
	}
	if c.Body != nil {
		t.Errorf("body = %v, want nil", *c.Body)
	}
	if len(c.Parents) != 1 || c.Parents[0].SHA != shaP {
		t.Errorf("parents = %+v", c.Parents)
	}
	// "A -> B" refs expand to both sides.
	want := []string{"HEAD", "main", "origin/main"}
	if len(c.Refs) != len(want) {
		t.Fatalf("refs = %v, want %v", c.Refs, want)
	}
	for i := range want {
		if c.Refs[i] != want[i] {
			t.Errorf("refs[%d] = %q, want %q", i, c.Refs[i], want[i])
		}
	}
	if c.Stats != nil || c.Files != nil {
		t.Error("stats should be absent without IncludeStats")
	}
}

func TestParseMultiLineBody(t *testing.T) {
	input := commitLine(shaA, "Add feature", "Long explanation.\n\nMore detail here.", "", "")
	commits, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("got %d commits, want 1", len(commits))
	}
	c := commits[0]
	if c.Body == nil {
		t.Fatal("body = nil, want text")
	}
	wantBody := "Long explanation.\n\nMore detail here."
	if *c.Body != wantBody {
		t.Errorf("body = %q, want %q", *c.Body, wantBody)
	}
	if c.Message != "Add feature\n\n"+wantBody {
		t.Errorf("message = %q", c.Message)
	}
}

func TestParseOmitBody(t *testing.T) {
	input := commitLine(shaA, "Subject", "Body text.", "", "")
	commits, err := Parse(strings.NewReader(input), Options{OmitBody: true})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := commits[0]
	if c.Body != nil {
		t.Errorf("body = %v, want nil", *c.Body)
	}
	if c.Message != "Subject" {
		t.Errorf("message = %q, want subject only", c.Message)
	}
}

func TestParseTrailerOnOwnLine(t *testing.T) {
	// git's %B keeps its trailing newline, so on raw log output the
	// |~|parents|~|refs trailer lands on a line of its own below the
	// header.
	header := strings.Join([]string{
		shaA, shaA[:7],
		"Ada Lovelace", "ada@example.com",
		"Ada Lovelace", "ada@example.com",
		"2026-08-01T10:00:00+00:00", "2 weeks ago",
		"2026-08-01T10:00:00+00:00", "2 weeks ago",
		"treesha", "Fix the thing", "Fix the thing",
	}, FieldSep)
	input := header + "\n" + FieldSep + shaP + FieldSep + "HEAD -> main"

	commits, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("got %d commits, want 1", len(commits))
	}
	c := commits[0]
	if c.Subject != "Fix the thing" || c.Body != nil {
		t.Errorf("subject/body = %q/%v", c.Subject, c.Body)
	}
	if len(c.Parents) != 1 || c.Parents[0].SHA != shaP {
		t.Errorf("parents = %+v", c.Parents)
	}
	if len(c.Refs) != 2 || c.Refs[0] != "HEAD" || c.Refs[1] != "main" {
		t.Errorf("refs = %v", c.Refs)
	}
}

func TestParseNumstat(t *testing.T) {
	input := strings.Join([]string{
		commitLine(shaA, "Change files", "", "", ""),
		"",
		"10\t2\tmain.go",
		"-\t-\tlogo.png",
		"3\t0\tdocs/readme.md",
		commitLine(shaB, "Second", "", shaA, ""),
	}, "\n")
	commits, err := Parse(strings.NewReader(input), Options{IncludeStats: true})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("got %d commits, want 2", len(commits))
	}
	c := commits[0]
	if c.Stats == nil {
		t.Fatal("stats missing")
	}
	if c.Stats.FilesChanged != 3 || c.Stats.Insertions != 13 || c.Stats.Deletions != 2 {
		t.Errorf("stats = %+v", *c.Stats)
	}
	files := *c.Files
	if len(files) != 3 {
		t.Fatalf("files = %d, want 3", len(files))
	}
	if files[1].Filename != "logo.png" || files[1].Additions != 0 || files[1].Deletions != 0 {
		t.Errorf("binary file entry = %+v", files[1])
	}
	if files[0].Changes != 12 {
		t.Errorf("changes = %d, want 12", files[0].Changes)
	}
	// Second commit has no numstat block but still gets empty stats.
	if commits[1].Stats == nil || commits[1].Stats.FilesChanged != 0 {
		t.Errorf("second commit stats = %+v", commits[1].Stats)
	}
	if commits[1].Files == nil || len(*commits[1].Files) != 0 {
		t.Errorf("second commit files = %v", commits[1].Files)
	}
}

func TestParseSkipsIncompleteHeader(t *testing.T) {
	short := shaA + FieldSep + "only|~|three-ish|~|fields"
	input := short + "\n" + commitLine(shaB, "Valid", "", "", "")
	commits, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(commits) != 1 || commits[0].SHA != shaB {
		t.Fatalf("commits = %+v, want only the valid one", commits)
	}
}

func TestParseSkipsLeadingGarbage(t *testing.T) {
	input := "warning: something\n\n" + commitLine(shaA, "Real", "", "", "")
	commits, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("got %d commits, want 1", len(commits))
	}
}

func TestParseEmptyInput(t *testing.T) {
	commits, err := Parse(strings.NewReader(""), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if commits == nil || len(commits) != 0 {
		t.Errorf("commits = %v, want empty non-nil slice", commits)
	}
}

func TestNewOutputDateRange(t *testing.T) {
	input := strings.Join([]string{
		commitLine(shaA, "Newer", "", "", ""),
		commitLine(shaB, "Older", "", "", ""),
	}, "\n")
	commits, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	commits[1].Author.Date = "2026-07-01T09:00:00+00:00"
	out := NewOutput("hug ll", commits)
	if out.Summary.TotalCommits != 2 {
		t.Errorf("total = %d, want 2", out.Summary.TotalCommits)
	}
	if out.Summary.DateRange == nil {
		t.Fatal("date range missing")
	}
	if out.Summary.DateRange.Earliest != "2026-07-01T09:00:00+00:00" {
		t.Errorf("earliest = %s", out.Summary.DateRange.Earliest)
	}
	if out.Summary.DateRange.Latest != "2026-08-01T10:00:00+00:00" {
		t.Errorf("latest = %s", out.Summary.DateRange.Latest)
	}
}

func TestNewOutputEmpty(t *testing.T) {
	out := NewOutput("hug ll", nil)
	if out.Summary.DateRange != nil {
		t.Error("date range should be omitted for empty set")
	}
}
