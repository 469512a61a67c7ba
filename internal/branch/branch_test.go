package branch

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hug-scm/hug-tools/internal/models"
)

func TestFormatDivergence(t *testing.T) {
	tests := []struct {
		name   string
		counts string
		want   string
	}{
		{"ahead and behind", "2\t3", "[ahead 2, behind 3]"},
		{"ahead only", "4\t0", "[ahead 4]"},
		{"behind only", "0\t1", "[behind 1]"},
		{"in sync", "0\t0", ""},
		{"malformed", "2", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDivergence(tt.counts); got != tt.want {
				t.Errorf("FormatDivergence(%q) = %q, want %q", tt.counts, got, tt.want)
			}
		})
	}
}

func TestParseLocalFields(t *testing.T) {
	// Splitting real for-each-ref output on NUL leaves the record
	// separator newline glued to the next ref's name; TrimSpace on the
	// name field absorbs it.
	fields := []string{
		"main", "abc1234", "initial commit", "origin/main", "[ahead 1]",
		"\nfeature/api", "def5678", "add api", "", "",
		"\nhug-backups/main-1", "aaa1111", "backup", "", "", "",
	}
	diverge := func(name, upstream string) string {
		if name == "main" {
			return "[ahead 1]"
		}
		return ""
	}

	d := parseLocalFields(fields, true, diverge)
	if d == nil {
		t.Fatal("parseLocalFields returned nil")
	}
	if len(d.Branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(d.Branches))
	}
	if d.Branches[0].Track != "[origin/main: [ahead 1]]" {
		t.Errorf("track = %q", d.Branches[0].Track)
	}
	if d.Branches[1].Track != "" {
		t.Errorf("untracked branch track = %q, want empty", d.Branches[1].Track)
	}
	if d.MaxLen != len("feature/api") {
		t.Errorf("MaxLen = %d, want %d", d.MaxLen, len("feature/api"))
	}
}

func TestParseLocalFieldsInSyncTrack(t *testing.T) {
	fields := []string{"main", "abc1234", "tidy", "origin/main", "", ""}
	d := parseLocalFields(fields, false, func(string, string) string { return "" })
	if d == nil {
		t.Fatal("parseLocalFields returned nil")
	}
	if got := d.Branches[0].Track; got != "[origin/main]" {
		t.Errorf("track = %q, want [origin/main]", got)
	}
}

func TestParseRemoteFields(t *testing.T) {
	fields := []string{
		"origin/HEAD", "abc0000", "",
		"\norigin/main", "abc1234", "initial commit",
		"\nupstream/devel", "def5678", "wip", "",
	}
	d := parseRemoteFields(fields, false)
	if d == nil {
		t.Fatal("parseRemoteFields returned nil")
	}
	if len(d.Branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(d.Branches))
	}
	if d.Branches[0].Name != "main" || d.Branches[0].Remote != "origin/main" {
		t.Errorf("first branch = %+v", d.Branches[0])
	}
	if d.Branches[1].Name != "devel" {
		t.Errorf("second branch name = %q, want devel", d.Branches[1].Name)
	}
}

func TestFilter(t *testing.T) {
	in := FilterInput{
		Branches: []string{"main", "feature/x", "hug-backups/main-1"},
		Hashes:   []string{"a", "b", "c"},
		Subjects: []string{"s1", "s2", "s3"},
		Tracks:   []string{"t1", "", ""},
		Dates:    []string{"d1", "d2", "d3"},
	}
	out, err := Filter(in, FilterOptions{ExcludeCurrent: "main", ExcludeBackups: true})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !reflect.DeepEqual(out.Branches, []string{"feature/x"}) {
		t.Errorf("Branches = %v", out.Branches)
	}
	if !reflect.DeepEqual(out.Hashes, []string{"b"}) {
		t.Errorf("Hashes = %v", out.Hashes)
	}

	decl := out.BashDeclare()
	if !strings.Contains(decl, "declare -a filtered_branches=('feature/x')") {
		t.Errorf("BashDeclare missing filtered_branches:\n%s", decl)
	}
}

func TestFilterLengthMismatch(t *testing.T) {
	in := FilterInput{
		Branches: []string{"main", "dev"},
		Hashes:   []string{"a"},
		Subjects: []string{"s1", "s2"},
		Tracks:   []string{"", ""},
		Dates:    []string{"d1", "d2"},
	}
	if _, err := Filter(in, FilterOptions{}); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  []int
	}{
		{"single", "2", 5, []int{1}},
		{"list and range", "1,3-5,7", 10, []int{0, 2, 3, 4, 6}},
		{"all shorthand", "a", 3, []int{0, 1, 2}},
		{"all word", "ALL", 2, []int{0, 1}},
		{"range clamped", "0-99", 4, []int{0, 1, 2, 3}},
		{"out of range dropped", "7", 3, []int{}},
		{"garbage skipped", "x,2,y-3", 5, []int{1}},
		{"duplicates collapse", "2,2,1-2", 5, []int{0, 1}},
		{"empty", "", 3, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelection(tt.input, tt.n)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSelection(%q, %d) = %v, want %v", tt.input, tt.n, got, tt.want)
			}
		})
	}
}

func TestSelectBashDeclare(t *testing.T) {
	sel := Select([]string{"main", "dev", "feature/x"}, "1,3")
	decl := sel.BashDeclare("")
	if !strings.Contains(decl, "declare -a selected_branches=('main' 'feature/x')") {
		t.Errorf("missing selected_branches:\n%s", decl)
	}
	if !strings.Contains(decl, "declare -a selected_indices=(0 2)") {
		t.Errorf("missing selected_indices:\n%s", decl)
	}

	decl = sel.BashDeclare("picked")
	if !strings.Contains(decl, "declare -a picked=(") {
		t.Errorf("custom array name not used:\n%s", decl)
	}
}

func TestFormatOptions(t *testing.T) {
	opts := FormatOptions(SelectInput{
		Branches: []string{"main", "dev"},
		Hashes:   []string{"abc1234", "def5678"},
		Dates:    []string{"2 days ago"},
		Subjects: []string{"initial commit", "tidy"},
		Tracks:   []string{"origin/main", ""},
	})
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2", len(opts))
	}
	for _, part := range []string{"main", "abc1234", "2 days ago", "initial commit", "[origin/main]"} {
		if !strings.Contains(opts[0], part) {
			t.Errorf("option %q missing %q", opts[0], part)
		}
	}
	if strings.Contains(opts[1], "[") {
		t.Errorf("option without track should have no brackets: %q", opts[1])
	}
}

func TestMatches(t *testing.T) {
	fields := []string{"feature/login", "abc1234", "Add OAuth login flow"}
	tests := []struct {
		name  string
		terms []string
		logic SearchLogic
		want  bool
	}{
		{"no terms", nil, SearchOR, true},
		{"or one hit", []string{"oauth", "zzz"}, SearchOR, true},
		{"or no hit", []string{"zzz", "qqq"}, SearchOR, false},
		{"and all hit", []string{"oauth", "login"}, SearchAND, true},
		{"and partial", []string{"oauth", "zzz"}, SearchAND, false},
		{"case insensitive", []string{"OAUTH"}, SearchOR, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(fields, tt.terms, tt.logic); got != tt.want {
				t.Errorf("Matches(%v, %s) = %v, want %v", tt.terms, tt.logic, got, tt.want)
			}
		})
	}
}

func TestSearchBashDeclare(t *testing.T) {
	decl := SearchBashDeclare(true, SearchOR, []string{"fix", "bug"})
	for _, want := range []string{
		"declare -i _search_matched=0",
		"declare _search_logic='OR'",
		"declare -a _search_terms=('fix' 'bug')",
	} {
		if !strings.Contains(decl, want) {
			t.Errorf("output missing %q:\n%s", want, decl)
		}
	}
	if decl := SearchBashDeclare(false, SearchAND, nil); !strings.Contains(decl, "_search_matched=1") {
		t.Errorf("non-match should declare 1:\n%s", decl)
	}
}

func TestDetailsBashDeclare(t *testing.T) {
	d := &Details{
		CurrentBranch: "main",
		MaxLen:        4,
		Branches: []models.Branch{
			{Name: "main", Hash: "abc1234", Subject: "it's done", Track: "[origin/main]"},
			{Name: "dev", Hash: "def5678", Subject: "wip"},
		},
	}
	decl := d.BashDeclare()
	for _, want := range []string{
		"declare current_branch='main'",
		"declare max_len=4",
		"declare -a branches=('main' 'dev')",
		`declare -a subjects=('it'\''s done' 'wip')`,
	} {
		if !strings.Contains(decl, want) {
			t.Errorf("output missing %q:\n%s", want, decl)
		}
	}
	if strings.Contains(decl, "remote_refs") {
		t.Error("remote_refs should be omitted when no branch has one")
	}

	d.Branches[0].Remote = "origin/main"
	if decl := d.BashDeclare(); !strings.Contains(decl, "declare -a remote_refs=('origin/main' '')") {
		t.Errorf("remote_refs missing:\n%s", decl)
	}
}
