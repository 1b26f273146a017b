package vcs

import (
	"os"
	"path/filepath"
	"strings"
)

// Repo is a detected repository.
type Repo struct {
	// Type is the detected VCS type
	Type Type

	// Root is the repository root directory path
	Root string
}

// Detect identifies the repository enclosing path.
//
// Detection walks up from path (or its parent, when path does not exist
// yet) and stops at the first directory holding .jj or .git. A .git file
// marks a git worktree and is treated like a .git directory.
//
// Returns ErrNotInVCS if no VCS is found.
func Detect(path string) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	current := existingDir(absPath)
	for {
		hasJJ := isDir(filepath.Join(current, ".jj"))
		_, gitErr := os.Stat(filepath.Join(current, ".git"))
		hasGit := gitErr == nil

		if hasJJ || hasGit {
			repo := &Repo{Root: current, Type: TypeGit}
			switch {
			case hasJJ && hasGit:
				repo.Type = TypeColocate
			case hasJJ:
				repo.Type = TypeJJ
			}
			return repo, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root without finding VCS
			return nil, ErrNotInVCS
		}
		current = parent
	}
}

// existingDir returns the closest existing directory at or above path.
func existingDir(path string) string {
	for {
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				return path
			}
			return filepath.Dir(path)
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// relative converts paths to repository-relative, slash-separated form.
// Paths outside the repository are dropped.
func (r *Repo) relative(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(r.Root, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}
