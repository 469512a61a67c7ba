// Package models holds the flat record types shared by the hug-tools
// subcommands. JSON field names follow the GitHub commit API where one
// exists so downstream consumers can reuse their GitHub tooling.
package models

import "fmt"

// Signature is an author or committer identity with both the ISO date
// and git's relative rendering.
type Signature struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Date         string `json:"date"`
	DateRelative string `json:"date_relative"`
}

// ParentRef is a parent commit reference.
type ParentRef struct {
	SHA string `json:"sha"`
}

// TreeRef is the tree object reference of a commit.
type TreeRef struct {
	SHA string `json:"sha"`
}

// Stats aggregates numstat totals for one commit.
type Stats struct {
	FilesChanged int `json:"files_changed"`
	Insertions   int `json:"insertions"`
	Deletions    int `json:"deletions"`
}

// FileChange is one numstat entry of a commit.
type FileChange struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
}

// Commit is a fully parsed git log entry. Body and Refs are nil (JSON
// null) when absent rather than empty, matching the established output
// contract of the shell tooling. Stats and Files are only populated
// when numstat parsing was requested.
type Commit struct {
	SHA       string        `json:"sha"`
	SHAShort  string        `json:"sha_short"`
	Author    Signature     `json:"author"`
	Committer Signature     `json:"committer"`
	Message   string        `json:"message"`
	Subject   string        `json:"subject"`
	Body      *string       `json:"body"`
	Tree      TreeRef       `json:"tree"`
	Parents   []ParentRef   `json:"parents"`
	Refs      []string      `json:"refs"`
	Stats     *Stats        `json:"stats,omitempty"`
	Files     *[]FileChange `json:"files,omitempty"`
}

// Branch is one entry of a branch listing. Track holds the upstream
// divergence summary for local branches, Remote the resolved remote
// ref where one was requested.
type Branch struct {
	Name    string `json:"name"`
	Hash    string `json:"hash"`
	Date    string `json:"date,omitempty"`
	Subject string `json:"subject"`
	Track   string `json:"track,omitempty"`
	Remote  string `json:"remote_ref,omitempty"`
}

// Worktree is one entry of `git worktree list`.
type Worktree struct {
	Path     string `json:"path"`
	Branch   string `json:"branch"`
	Commit   string `json:"commit"`
	Dirty    bool   `json:"dirty"`
	Locked   bool   `json:"locked"`
	Detached bool   `json:"detached"`
}

// CheckParallel verifies that arrays travelling together between the
// shell and hug-tools have equal length. The shell passes branch
// fields as separate arrays; a mismatch means the caller mangled them.
func CheckParallel(n int, others ...[]string) error {
	for _, o := range others {
		if len(o) != n {
			return fmt.Errorf("parallel array length mismatch: expected %d entries, got %d", n, len(o))
		}
	}
	return nil
}
