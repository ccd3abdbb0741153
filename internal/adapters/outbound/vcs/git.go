package vcs

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitAdapter implements domain.VersionControl with go-git. The orchestrator
// only sees the small command set of the port; everything git-specific stays
// in here.
type GitAdapter struct{}

func New() *GitAdapter {
	return &GitAdapter{}
}

func (g *GitAdapter) IsRepo(root string) bool {
	_, err := git.PlainOpen(root)
	return err == nil
}

func (g *GitAdapter) CurrentBranch(root string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("opening repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// Snapshot points a branch ref at HEAD and returns "name@hash". The working
// tree is untouched; the branch is the recovery point.
func (g *GitAdapter) Snapshot(root, name string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("opening repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}

	branch := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(branch, true); err == nil {
		return "", fmt.Errorf("backup branch %s already exists", name)
	}

	ref := plumbing.NewHashReference(branch, head.Hash())
	if err := repo.Storer.SetReference(ref); err != nil {
		return "", fmt.Errorf("creating backup branch: %w", err)
	}
	return fmt.Sprintf("%s@%s", name, head.Hash().String()[:12]), nil
}

func (g *GitAdapter) Remove(root, rel string) error {
	wt, err := worktree(root)
	if err != nil {
		return err
	}
	if _, err := wt.Remove(rel); err != nil {
		return fmt.Errorf("removing %s: %w", rel, err)
	}
	return nil
}

func (g *GitAdapter) Move(root, from, to string) error {
	wt, err := worktree(root)
	if err != nil {
		return err
	}
	if _, err := wt.Move(from, to); err != nil {
		return fmt.Errorf("moving %s to %s: %w", from, to, err)
	}
	return nil
}

// Commit stages everything outstanding and commits it.
func (g *GitAdapter) Commit(root, message string) (string, error) {
	wt, err := worktree(root)
	if err != nil {
		return "", err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("staging changes: %w", err)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "debloat",
			Email: "debloat@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return hash.String(), nil
}

func worktree(root string) (*git.Worktree, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	return wt, nil
}
