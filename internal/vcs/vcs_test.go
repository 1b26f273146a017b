package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// setupTestRepo creates a git repository in a temp dir with one commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	run("config", "user.name", "Test User")
	run("config", "user.email", "test@example.com")

	if err := os.MkdirAll(filepath.Join(dir, "quest"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "quest", "poi.json"), []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", ".")
	run("commit", "-m", "initial")

	return dir
}

func TestDetect(t *testing.T) {
	dir := setupTestRepo(t)

	repo, err := Detect(filepath.Join(dir, "quest", "missing", "1.json"))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if repo.Type != TypeGit {
		t.Errorf("Type = %s, want git", repo.Type)
	}

	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(repo.Root)
	if got != want {
		t.Errorf("Root = %s, want %s", got, want)
	}
}

func TestDetect_Colocated(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{".jj", ".git"} {
		if err := os.Mkdir(filepath.Join(dir, d), 0755); err != nil {
			t.Fatal(err)
		}
	}

	repo, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if repo.Type != TypeColocate {
		t.Errorf("Type = %s, want colocate", repo.Type)
	}
}

func TestDirtyPaths(t *testing.T) {
	dir := setupTestRepo(t)
	ctx := context.Background()
	aggregate := filepath.Join(dir, "quest", "poi.json")
	records := filepath.Join(dir, "quest")

	dirty, err := Check(ctx, aggregate, records)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(dirty) != 0 {
		t.Errorf("clean repo reported dirty: %v", dirty)
	}

	if err := os.WriteFile(filepath.Join(records, "101.json"), []byte(`{"game_id":101}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	dirty, err = Check(ctx, aggregate, records)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(dirty) != 1 || dirty[0] != "quest/101.json" {
		t.Errorf("dirty = %v, want [quest/101.json]", dirty)
	}

	err = RequireClean(ctx, aggregate, records)
	if !errors.Is(err, ErrDirtyWorkspace) {
		t.Errorf("RequireClean error = %v, want ErrDirtyWorkspace", err)
	}
}

func TestCheck_NotInVCS(t *testing.T) {
	dir := t.TempDir()
	if _, err := Detect(dir); !errors.Is(err, ErrNotInVCS) {
		t.Skip("temp dir is inside a repository")
	}

	if err := RequireClean(context.Background(), dir); err != nil {
		t.Errorf("RequireClean outside VCS = %v, want nil", err)
	}
}

func TestParseGitStatus(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{"empty", "", nil},
		{"modified", " M quest/poi.json\n", []string{"quest/poi.json"}},
		{"untracked", "?? quest/1.json\n?? quest/2.json\n", []string{"quest/1.json", "quest/2.json"}},
		{"rename", "R  quest/1.json -> quest/2.json\n", []string{"quest/2.json"}},
		{"quoted", "?? \"quest/a b.json\"\n", []string{"quest/a b.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseGitStatus([]byte(tt.output))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseLines(t *testing.T) {
	got := ParseLines([]byte("a\r\n\n  \nb\n"))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("ParseLines = %q", got)
	}
}
