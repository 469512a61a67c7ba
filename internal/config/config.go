// Package config loads hug-tools settings from an optional TOML file
// with environment overrides. A missing config file is not an error;
// every knob has a default tuned for typical repositories.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables of the analysis subcommands.
type Config struct {
	Analyze AnalyzeConfig `toml:"analyze"`
	Git     GitConfig     `toml:"git"`
}

// AnalyzeConfig covers the history analytics commands.
type AnalyzeConfig struct {
	// OwnershipDecayDays is the half-life style constant of the
	// recency weighting exp(-days_ago/decay).
	OwnershipDecayDays float64 `toml:"ownership_decay_days"`
	// ChurnDecayDays weights churn scores toward recent changes.
	ChurnDecayDays float64 `toml:"churn_decay_days"`
	// CoChangeThreshold is the minimum correlation reported.
	CoChangeThreshold float64 `toml:"co_change_threshold"`
	// CoChangeTopN caps the reported pair list.
	CoChangeTopN int `toml:"co_change_top_n"`
	// DepsThreshold is the minimum shared-file count for two commits
	// to be considered related.
	DepsThreshold int `toml:"deps_threshold"`
	// DepsMaxResults caps related-commit listings.
	DepsMaxResults int `toml:"deps_max_results"`
	// DepsMaxCommits overrides the repository-size based commit cap
	// when positive. Env HUG_ANALYZE_DEPS_MAX_COMMITS wins over both.
	DepsMaxCommits int `toml:"deps_max_commits"`
}

// GitConfig covers subprocess behavior.
type GitConfig struct {
	// TimeoutSeconds bounds a single git invocation.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analyze: AnalyzeConfig{
			OwnershipDecayDays: 180,
			ChurnDecayDays:     90,
			CoChangeThreshold:  0.3,
			CoChangeTopN:       20,
			DepsThreshold:      2,
			DepsMaxResults:     20,
		},
		Git: GitConfig{
			TimeoutSeconds: 60,
		},
	}
}

// Path returns the config file location under the user config dir.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "hug-tools", "hug-tools.toml"), nil
}

// Load reads the config file if present and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HUG_ANALYZE_DEPS_MAX_COMMITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Analyze.DepsMaxCommits = n
		}
	}
}

// Version reports the Hug SCM version embedded in JSON envelopes. The
// shell wrappers export HUG_VERSION; standalone runs say "unknown".
func Version() string {
	if v := os.Getenv("HUG_VERSION"); v != "" {
		return v
	}
	return "unknown"
}
