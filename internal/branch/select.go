package branch

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hug-scm/hug-tools/internal/bashout"
	"github.com/hug-scm/hug-tools/internal/ui"
)

// SelectInput holds the parallel arrays a selection renders from.
type SelectInput struct {
	Branches []string
	Hashes   []string
	Dates    []string
	Subjects []string
	Tracks   []string
}

// FormatOptions renders one styled line per branch for the picker or
// numbered menu. Missing trailing arrays are treated as empty.
func FormatOptions(in SelectInput) []string {
	at := func(s []string, i int) string {
		if i < len(s) {
			return s[i]
		}
		return ""
	}
	opts := make([]string, 0, len(in.Branches))
	for i, name := range in.Branches {
		parts := []string{name}
		if h := at(in.Hashes, i); h != "" {
			parts = append(parts, ui.Hash.Render(h))
		}
		if d := at(in.Dates, i); d != "" {
			parts = append(parts, ui.Date.Render(d))
		}
		if s := at(in.Subjects, i); s != "" {
			parts = append(parts, ui.Subject.Render(s))
		}
		if t := at(in.Tracks, i); t != "" {
			parts = append(parts, ui.Track.Render("["+t+"]"))
		}
		opts = append(opts, strings.Join(parts, " "))
	}
	return opts
}

// ParseSelection turns user input like "1,3-5,7", "a" or "all" into
// sorted unique zero-based indexes against n items. Ranges clamp to
// the valid span; malformed parts and out-of-range singles are
// skipped.
func ParseSelection(input string, n int) []int {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "a" || input == "all" {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err1 := strconv.Atoi(strings.TrimSpace(lo))
			end, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 != nil || err2 != nil {
				continue
			}
			start = max(0, start-1)
			end = min(n-1, end-1)
			for i := start; i <= end; i++ {
				seen[i] = true
			}
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		idx := num - 1
		if idx >= 0 && idx < n {
			seen[idx] = true
		}
	}

	indexes := make([]int, 0, len(seen))
	for i := range seen {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}

// Selection is the outcome of picking branches from a listing.
type Selection struct {
	Branches []string
	Indexes  []int
}

// Select applies indexes from ParseSelection to the branch names.
func Select(branches []string, input string) Selection {
	idx := ParseSelection(input, len(branches))
	sel := Selection{Indexes: idx}
	for _, i := range idx {
		sel.Branches = append(sel.Branches, branches[i])
	}
	return sel
}

// BashDeclare renders the selection for eval. arrayName defaults to
// selected_branches.
func (s Selection) BashDeclare(arrayName string) string {
	if arrayName == "" {
		arrayName = "selected_branches"
	}
	return bashout.Lines(
		bashout.Array(arrayName, s.Branches),
		bashout.IntArray("selected_indices", s.Indexes),
	)
}
