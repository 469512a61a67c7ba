package branch

import (
	"fmt"
	"strings"

	"github.com/hug-scm/hug-tools/internal/bashout"
	"github.com/hug-scm/hug-tools/internal/models"
)

// FilterInput holds the parallel branch arrays the shell passes in.
type FilterInput struct {
	Branches []string
	Hashes   []string
	Subjects []string
	Tracks   []string
	Dates    []string
}

// FilterOptions selects which branches to drop.
type FilterOptions struct {
	ExcludeCurrent string // current branch name, dropped when non-empty
	ExcludeBackups bool
}

// Filter removes excluded branches from all five arrays in lockstep.
// The arrays must have equal lengths.
func Filter(in FilterInput, opts FilterOptions) (FilterInput, error) {
	if err := models.CheckParallel(len(in.Branches), in.Hashes, in.Subjects, in.Tracks, in.Dates); err != nil {
		return FilterInput{}, fmt.Errorf("filter branches: %w", err)
	}
	var out FilterInput
	for i, name := range in.Branches {
		if opts.ExcludeCurrent != "" && name == opts.ExcludeCurrent {
			continue
		}
		if opts.ExcludeBackups && strings.HasPrefix(name, backupPrefix) {
			continue
		}
		out.Branches = append(out.Branches, name)
		out.Hashes = append(out.Hashes, in.Hashes[i])
		out.Subjects = append(out.Subjects, in.Subjects[i])
		out.Tracks = append(out.Tracks, in.Tracks[i])
		out.Dates = append(out.Dates, in.Dates[i])
	}
	return out, nil
}

// BashDeclare renders the filtered arrays for eval.
func (in FilterInput) BashDeclare() string {
	return bashout.Lines(
		bashout.Array("filtered_branches", in.Branches),
		bashout.Array("filtered_hashes", in.Hashes),
		bashout.Array("filtered_subjects", in.Subjects),
		bashout.Array("filtered_tracks", in.Tracks),
		bashout.Array("filtered_dates", in.Dates),
	)
}

// Pad extends every array to length n with empty strings so callers
// can pass ragged input.
func (in *FilterInput) Pad(n int) {
	pad := func(s []string) []string {
		for len(s) < n {
			s = append(s, "")
		}
		return s
	}
	in.Branches = pad(in.Branches)
	in.Hashes = pad(in.Hashes)
	in.Subjects = pad(in.Subjects)
	in.Tracks = pad(in.Tracks)
	in.Dates = pad(in.Dates)
}
