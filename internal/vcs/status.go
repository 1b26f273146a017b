package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// statusTimeout bounds a single status query.
const statusTimeout = 30 * time.Second

// DirtyPaths returns the repository-relative paths under the given targets
// that have uncommitted changes (modified, added, deleted or untracked).
func (r *Repo) DirtyPaths(ctx context.Context, targets ...string) ([]string, error) {
	rel := r.relative(targets)
	if len(rel) == 0 {
		return nil, nil
	}

	kind := r.Type
	if kind == TypeColocate {
		kind = TypeJJ
	}
	if !available(kind) {
		return nil, fmt.Errorf("%w: %s", ErrVCSNotAvailable, binary(kind))
	}

	if kind == TypeGit {
		args := append([]string{"status", "--porcelain", "--untracked-files=all", "--"}, rel...)
		out, err := ExecContext(ctx, statusTimeout, r.Root, "git", args...)
		if err != nil {
			return nil, err
		}
		return parseGitStatus(out), nil
	}

	args := append([]string{"diff", "--name-only", "--"}, rel...)
	out, err := ExecContext(ctx, statusTimeout, r.Root, "jj", args...)
	if err != nil {
		return nil, err
	}
	return ParseLines(out), nil
}

// parseGitStatus extracts paths from `git status --porcelain` output.
// Format: XY path, or XY old -> new for renames.
func parseGitStatus(output []byte) []string {
	var paths []string
	for _, line := range ParseLines(output) {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if _, after, ok := strings.Cut(path, " -> "); ok {
			path = after
		}
		paths = append(paths, strings.Trim(path, `"`))
	}
	return paths
}

// RequireClean returns ErrDirtyWorkspace listing the dirty targets, or nil
// when they are clean or not under version control.
func RequireClean(ctx context.Context, targets ...string) error {
	dirty, err := Check(ctx, targets...)
	if err != nil {
		return err
	}
	if len(dirty) > 0 {
		return fmt.Errorf("%w: %s", ErrDirtyWorkspace, strings.Join(dirty, ", "))
	}
	return nil
}

// Check returns the dirty targets. Targets outside any repository are
// reported clean.
func Check(ctx context.Context, targets ...string) ([]string, error) {
	if len(targets) == 0 {
		return nil, nil
	}
	repo, err := Detect(targets[0])
	if err != nil {
		if errors.Is(err, ErrNotInVCS) {
			return nil, nil
		}
		return nil, err
	}
	return repo.DirtyPaths(ctx, targets...)
}
