package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Analyze.OwnershipDecayDays != 180 {
		t.Errorf("OwnershipDecayDays = %v, want 180", cfg.Analyze.OwnershipDecayDays)
	}
	if cfg.Analyze.ChurnDecayDays != 90 {
		t.Errorf("ChurnDecayDays = %v, want 90", cfg.Analyze.ChurnDecayDays)
	}
	if cfg.Analyze.CoChangeThreshold != 0.3 {
		t.Errorf("CoChangeThreshold = %v, want 0.3", cfg.Analyze.CoChangeThreshold)
	}
	if cfg.Analyze.DepsThreshold != 2 {
		t.Errorf("DepsThreshold = %v, want 2", cfg.Analyze.DepsThreshold)
	}
	if cfg.Git.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %v, want 60", cfg.Git.TimeoutSeconds)
	}
}

func TestTomlOverridesDefaults(t *testing.T) {
	doc := `
[analyze]
ownership_decay_days = 90.0
deps_max_commits = 1500

[git]
timeout_seconds = 30
`
	cfg := Default()
	if err := toml.Unmarshal([]byte(doc), cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.Analyze.OwnershipDecayDays != 90 {
		t.Errorf("OwnershipDecayDays = %v, want 90", cfg.Analyze.OwnershipDecayDays)
	}
	if cfg.Analyze.DepsMaxCommits != 1500 {
		t.Errorf("DepsMaxCommits = %v, want 1500", cfg.Analyze.DepsMaxCommits)
	}
	// Untouched keys keep their defaults.
	if cfg.Analyze.CoChangeTopN != 20 {
		t.Errorf("CoChangeTopN = %v, want 20", cfg.Analyze.CoChangeTopN)
	}
	if cfg.Git.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %v, want 30", cfg.Git.TimeoutSeconds)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HUG_ANALYZE_DEPS_MAX_COMMITS", "4000")
	cfg := Default()
	applyEnv(cfg)
	if cfg.Analyze.DepsMaxCommits != 4000 {
		t.Errorf("DepsMaxCommits = %v, want 4000", cfg.Analyze.DepsMaxCommits)
	}

	t.Setenv("HUG_ANALYZE_DEPS_MAX_COMMITS", "not-a-number")
	cfg = Default()
	applyEnv(cfg)
	if cfg.Analyze.DepsMaxCommits != 0 {
		t.Errorf("DepsMaxCommits = %v, want 0 for invalid env", cfg.Analyze.DepsMaxCommits)
	}
}

func TestVersion(t *testing.T) {
	t.Setenv("HUG_VERSION", "")
	if got := Version(); got != "unknown" {
		t.Errorf("Version() = %q, want unknown", got)
	}
	t.Setenv("HUG_VERSION", "3.1.0")
	if got := Version(); got != "3.1.0" {
		t.Errorf("Version() = %q, want 3.1.0", got)
	}
}
