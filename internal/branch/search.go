package branch

import (
	"strings"

	"github.com/hug-scm/hug-tools/internal/bashout"
)

// SearchLogic chooses how multiple search terms combine.
type SearchLogic string

const (
	// SearchOR matches when any term appears in any field.
	SearchOR SearchLogic = "OR"
	// SearchAND matches when every term appears in some field.
	SearchAND SearchLogic = "AND"
)

// Matches reports whether the fields of one branch satisfy the terms.
// Matching is case-insensitive substring search; with no terms
// everything matches.
func Matches(fields, terms []string, logic SearchLogic) bool {
	if len(terms) == 0 {
		return true
	}
	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
	}
	termHits := func(term string) bool {
		term = strings.ToLower(term)
		for _, f := range lowered {
			if strings.Contains(f, term) {
				return true
			}
		}
		return false
	}
	if logic == SearchAND {
		for _, t := range terms {
			if !termHits(t) {
				return false
			}
		}
		return true
	}
	for _, t := range terms {
		if termHits(t) {
			return true
		}
	}
	return false
}

// SearchBashDeclare renders a match result for eval by the shell.
// matched uses shell conventions: 0 means the branch matched.
func SearchBashDeclare(matched bool, logic SearchLogic, terms []string) string {
	code := 1
	if matched {
		code = 0
	}
	return bashout.Lines(
		bashout.Int("_search_matched", code),
		bashout.Scalar("_search_logic", string(logic)),
		bashout.Array("_search_terms", terms),
	)
}
