// Package repo locates and inspects the enclosing git repository
// without shelling out, used for fast validation before the heavier
// git CLI pipelines run.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository reports that a path is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Find opens the repository containing dir, searching parent
// directories the way git itself does.
func Find(dir string) (*git.Repository, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return nil, fmt.Errorf("open repository at %s: %w", dir, err)
	}
	return r, nil
}

// IsRepository reports whether dir is inside a git work tree.
func IsRepository(dir string) bool {
	_, err := Find(dir)
	return err == nil
}

// Root returns the work tree root of the repository containing dir.
func Root(dir string) (string, error) {
	r, err := Find(dir)
	if err != nil {
		return "", err
	}
	wt, err := r.Worktree()
	if err != nil {
		return "", fmt.Errorf("resolve work tree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// Head returns the current branch name, or "detached HEAD" when HEAD
// does not point at a branch.
func Head(dir string) (string, error) {
	r, err := Find(dir)
	if err != nil {
		return "", err
	}
	ref, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if !ref.Name().IsBranch() {
		return "detached HEAD", nil
	}
	return ref.Name().Short(), nil
}

// ValidateDir checks that dir exists and is a directory, returning the
// absolute path. Tool handlers use it to vet caller-supplied working
// directories before running anything there.
func ValidateDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}
