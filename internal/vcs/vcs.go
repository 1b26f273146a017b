// Package vcs checks whether the files questtool is about to overwrite have
// uncommitted changes.
//
// Split, merge and delete all overwrite their targets. When the quest data
// lives in a git or jj repository, uncommitted edits would be lost without
// a trace, so callers can ask for the dirty subset of their targets first:
//
//	repo, err := vcs.Detect("quest")
//	if errors.Is(err, vcs.ErrNotInVCS) {
//	    // nothing to protect
//	}
//	dirty, err := repo.DirtyPaths(ctx, "quest/poi.json", "quest")
//
// Colocated repositories (.jj next to .git) are queried through jj, which
// also snapshots the working copy.
package vcs

import (
	"errors"
	"os/exec"
)

// Type represents the VCS backend type
type Type string

const (
	// TypeGit indicates a git-only repository
	TypeGit Type = "git"

	// TypeJJ indicates a jj-only repository (non-colocated)
	TypeJJ Type = "jj"

	// TypeColocate indicates a colocated repository (jj + git together)
	TypeColocate Type = "colocate"
)

// String returns the string representation of the VCS type
func (t Type) String() string {
	return string(t)
}

var (
	// ErrNotInVCS is returned when no repository encloses the path.
	ErrNotInVCS = errors.New("not in a VCS repository")

	// ErrVCSNotAvailable is returned when the required VCS binary
	// (git or jj) is not installed or not in PATH.
	ErrVCSNotAvailable = errors.New("VCS binary not available")

	// ErrDirtyWorkspace is returned when target paths have uncommitted
	// changes and a clean workspace is required.
	ErrDirtyWorkspace = errors.New("workspace has uncommitted changes")
)

// binary returns the command used to query a repository of type t.
func binary(t Type) string {
	if t == TypeGit {
		return "git"
	}
	return "jj"
}

// available reports whether the binary for t is on PATH.
func available(t Type) bool {
	_, err := exec.LookPath(binary(t))
	return err == nil
}
