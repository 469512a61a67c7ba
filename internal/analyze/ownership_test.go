package analyze

import (
	"math"
	"strings"
	"testing"
)

func TestComputeOwnership(t *testing.T) {
	commits := []OwnershipCommit{
		{Hash: "c5", Author: "Alice", DaysAgo: 1},
		{Hash: "c4", Author: "Alice", DaysAgo: 10},
		{Hash: "c3", Author: "Alice", DaysAgo: 30},
		{Hash: "c2", Author: "Bob", DaysAgo: 400},
		{Hash: "c1", Author: "Bob", DaysAgo: 500},
	}
	ownership := ComputeOwnership(commits, 180)
	if len(ownership) != 2 {
		t.Fatalf("got %d owners, want 2", len(ownership))
	}
	alice, bob := ownership[0], ownership[1]
	if alice.Author != "Alice" {
		t.Fatalf("top owner = %s, want Alice", alice.Author)
	}
	if alice.RawCommits != 3 || bob.RawCommits != 2 {
		t.Errorf("raw commits = %d/%d", alice.RawCommits, bob.RawCommits)
	}
	if alice.Classification != "primary" {
		t.Errorf("Alice classification = %s, want primary", alice.Classification)
	}
	if bob.Classification != "historical" {
		t.Errorf("Bob classification = %s, want historical", bob.Classification)
	}
	if alice.LastCommitDays != 1 || bob.LastCommitDays != 400 {
		t.Errorf("last commit days = %d/%d", alice.LastCommitDays, bob.LastCommitDays)
	}
	if total := alice.OwnershipPct + bob.OwnershipPct; math.Abs(total-100) > 1e-9 {
		t.Errorf("percentages sum to %f, want 100", total)
	}
	wantAlice := math.Exp(-1.0/180) + math.Exp(-10.0/180) + math.Exp(-30.0/180)
	if math.Abs(alice.WeightedScore-wantAlice) > 1e-9 {
		t.Errorf("Alice weighted = %f, want %f", alice.WeightedScore, wantAlice)
	}
}

func TestComputeOwnershipEmpty(t *testing.T) {
	if got := ComputeOwnership(nil, 180); got != nil {
		t.Errorf("ComputeOwnership(nil) = %v, want nil", got)
	}
}

func TestParseAuthorFiles(t *testing.T) {
	lines := []string{
		"1111111111111111111111111111111111111111",
		"api.go",
		"api_test.go",
		"",
		"2222222222222222222222222222222222222222",
		"api.go",
	}
	files := ParseAuthorFiles(lines)
	if files["api.go"] != 2 || files["api_test.go"] != 1 {
		t.Errorf("files = %v", files)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2", len(files))
	}
}

func TestSortedAuthorFiles(t *testing.T) {
	sorted := SortedAuthorFiles(map[string]int{"b.go": 3, "a.go": 3, "c.go": 9})
	if sorted[0].Path != "c.go" {
		t.Errorf("first = %s, want c.go", sorted[0].Path)
	}
	// Ties break on path.
	if sorted[1].Path != "a.go" || sorted[2].Path != "b.go" {
		t.Errorf("tie order = %s, %s", sorted[1].Path, sorted[2].Path)
	}
}

func TestFormatDaysAgo(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "today"},
		{1, "yesterday"},
		{5, "5 days ago"},
		{7, "1 week ago"},
		{21, "3 weeks ago"},
		{45, "1 month ago"},
		{200, "6 months ago"},
		{365, "1 year ago"},
		{800, "2 years ago"},
	}
	for _, tt := range tests {
		if got := FormatDaysAgo(tt.days); got != tt.want {
			t.Errorf("FormatDaysAgo(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestFormatOwnershipText(t *testing.T) {
	ownership := []Ownership{
		{Author: "Alice", RawCommits: 12, OwnershipPct: 65, Classification: "primary", LastCommitDays: 3},
		{Author: "Bob", RawCommits: 4, OwnershipPct: 25, Classification: "secondary", LastCommitDays: 200},
		{Author: "Carol", RawCommits: 2, OwnershipPct: 10, Classification: "historical", LastCommitDays: 700},
	}
	got := FormatOwnershipText("src/auth.go", ownership)
	if !strings.Contains(got, "Experts for src/auth.go:") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "Primary maintainer:") {
		t.Errorf("missing singular primary header:\n%s", got)
	}
	if !strings.Contains(got, "Alice (65%, 12 commits, last: 3 days ago)") {
		t.Errorf("missing Alice line:\n%s", got)
	}
	// Bob's last commit is past the stale bar.
	if !strings.Contains(got, "Bob (25%, 4 commits, last: 6 months ago) ⚠️  Stale") {
		t.Errorf("missing stale marker:\n%s", got)
	}
	if !strings.Contains(got, "Historical:") {
		t.Errorf("missing historical group:\n%s", got)
	}
}

func TestFormatAuthorExpertiseText(t *testing.T) {
	got := FormatAuthorExpertiseText("Alice", map[string]int{"api.go": 5, "db.go": 2})
	if !strings.Contains(got, "Alice's expertise areas:") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "(5 commits)") {
		t.Errorf("missing counts:\n%s", got)
	}

	empty := FormatAuthorExpertiseText("Bob", nil)
	if !strings.Contains(empty, "No files found.") {
		t.Errorf("missing empty message:\n%s", empty)
	}
}
