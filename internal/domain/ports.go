package domain

import (
	"context"
	"errors"
)

// Sentinel errors mapped to exit codes by the binary: ErrPrecondition exits
// 1, ErrUsage exits 2.
var (
	ErrPrecondition = errors.New("precondition failed")
	ErrUsage        = errors.New("invalid arguments")
)

// VersionControl is the small command set the orchestrator needs from a VCS.
// Git internals stay behind this port so any backend can be substituted.
type VersionControl interface {
	IsRepo(root string) bool
	CurrentBranch(root string) (string, error)
	// Snapshot records the current state under name and returns a ref that
	// identifies it. The working tree is left untouched.
	Snapshot(root, name string) (string, error)
	// Remove deletes rel from the working tree as a tracked removal.
	Remove(root, rel string) error
	// Move renames from to to, carrying history where the backend supports it.
	Move(root, from, to string) error
	// Commit stages all outstanding changes and commits them.
	Commit(root, message string) (string, error)
}

// TestRunner detects and runs the project's test command.
type TestRunner interface {
	// Detect returns the shell command to verify the project, or "" when no
	// convention matches (verification then passes vacuously).
	Detect(root string) string
	// Run executes command under ctx; a timeout or non-zero exit is a
	// verification failure.
	Run(ctx context.Context, root, command string) error
}

// ScanStore persists and reloads a finding set between scan and remediate.
type ScanStore interface {
	Save(path string, findings []Finding) error
	Load(path string) ([]Finding, error)
}
