package analyze

import (
	"math"
	"strings"
	"testing"
)

const nameOnlyFixture = `1111111111111111111111111111111111111111
api.go
api_test.go

2222222222222222222222222222222222222222
api.go
api_test.go
readme.md

3333333333333333333333333333333333333333
api.go

4444444444444444444444444444444444444444
readme.md
`

func TestParseNameOnlyLog(t *testing.T) {
	commits, err := ParseNameOnlyLog(strings.NewReader(nameOnlyFixture))
	if err != nil {
		t.Fatalf("ParseNameOnlyLog: %v", err)
	}
	if len(commits) != 4 {
		t.Fatalf("got %d commits, want 4", len(commits))
	}
	if len(commits[1]) != 3 || !commits[1]["readme.md"] {
		t.Errorf("second commit = %v", commits[1])
	}
	if len(commits[2]) != 1 {
		t.Errorf("third commit = %v", commits[2])
	}
}

func TestParseNameOnlyLogNoBlankSeparators(t *testing.T) {
	// Hash lines alone are enough to split commits.
	input := strings.ReplaceAll(nameOnlyFixture, "\n\n", "\n")
	commits, err := ParseNameOnlyLog(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseNameOnlyLog: %v", err)
	}
	if len(commits) != 4 {
		t.Fatalf("got %d commits, want 4", len(commits))
	}
}

func TestCoChangeCorrelations(t *testing.T) {
	commits, err := ParseNameOnlyLog(strings.NewReader(nameOnlyFixture))
	if err != nil {
		t.Fatalf("ParseNameOnlyLog: %v", err)
	}
	correlations := CoChangeCorrelations(commits, 0.3)

	// api.go+api_test.go: co=2, counts 3 and 2 -> 2/2 = 1.0.
	// api.go+readme.md: co=1, counts 3 and 2 -> 1/2 = 0.5.
	// api_test.go+readme.md: co=1, counts 2 and 2 -> 0.5.
	if len(correlations) != 3 {
		t.Fatalf("got %d correlations, want 3: %+v", len(correlations), correlations)
	}
	top := correlations[0]
	if top.FileA != "api.go" || top.FileB != "api_test.go" {
		t.Errorf("top pair = %s/%s", top.FileA, top.FileB)
	}
	if math.Abs(top.Correlation-1.0) > 1e-9 || top.CoChanges != 2 {
		t.Errorf("top = %+v", top)
	}
	if top.ChangesA != 3 || top.ChangesB != 2 {
		t.Errorf("counts = %d/%d", top.ChangesA, top.ChangesB)
	}
}

func TestCoChangeThresholdFilters(t *testing.T) {
	commits, _ := ParseNameOnlyLog(strings.NewReader(nameOnlyFixture))
	correlations := CoChangeCorrelations(commits, 0.6)
	if len(correlations) != 1 {
		t.Fatalf("got %d correlations above 0.6, want 1", len(correlations))
	}
}

func TestFormatCoChangesTextGroups(t *testing.T) {
	commits, _ := ParseNameOnlyLog(strings.NewReader(nameOnlyFixture))
	got := FormatCoChangesText(CoChangeCorrelations(commits, 0.3), 0.3, len(commits))

	if !strings.Contains(got, "Co-change Analysis (last 4 commits, ≥30% correlation):") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "Strong coupling (≥60%):") {
		t.Errorf("missing strong group:\n%s", got)
	}
	if !strings.Contains(got, "api.go ↔ api_test.go") {
		t.Errorf("missing strong pair:\n%s", got)
	}
	if !strings.Contains(got, "100% correlation (2/2 commits)") {
		t.Errorf("missing correlation detail:\n%s", got)
	}
	if !strings.Contains(got, "Moderate coupling (40-60%):") {
		t.Errorf("missing moderate group:\n%s", got)
	}
	if !strings.Contains(got, "Interpretation:") {
		t.Errorf("missing interpretation:\n%s", got)
	}
}

func TestFormatCoChangesTextEmpty(t *testing.T) {
	got := FormatCoChangesText(nil, 0.3, 10)
	if !strings.Contains(got, "No file pairs found above threshold.") {
		t.Errorf("missing empty message:\n%s", got)
	}
	if !strings.Contains(got, "Lowering --threshold") {
		t.Errorf("missing hint:\n%s", got)
	}
}
