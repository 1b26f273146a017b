package quest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIDFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		wantID string
		wantOK bool
	}{
		{"101.json", "101", true},
		{"0.json", "0", true},
		{"abc.json", "", false},
		{"notes.txt", "", false},
		{"101.txt", "", false},
		{"101.json.bak", "", false},
		{".json", "", false},
		{"1a.json", "", false},
		{".0b6f.tmp", "", false},
		{"README.md", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := IDFromFilename(tt.name)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("IDFromFilename(%q) = (%q, %v), want (%q, %v)", tt.name, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestListRecordFiles(t *testing.T) {
	dir := t.TempDir()

	files := []string{"2.json", "10.json", "1.json", "abc.json", "notes.txt", "poi.json", "README.md"}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "3.json"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	got, err := ListRecordFiles(dir)
	if err != nil {
		t.Fatalf("ListRecordFiles failed: %v", err)
	}

	want := []string{"1.json", "10.json", "2.json"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListRecordFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestListRecordFiles_MissingDir(t *testing.T) {
	got, err := ListRecordFiles(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrNoRecordDir) {
		t.Fatalf("ListRecordFiles() error = %v, want ErrNoRecordDir", err)
	}
	if got != nil {
		t.Errorf("expected no names, got %v", got)
	}
}

func TestWriteAndReadRecordFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "quest")

	r, err := Parse([]byte(`{"game_id":"303","name":"演習","detail":"今日中に"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	path, err := WriteRecordFile(dir, r, 2)
	if err != nil {
		t.Fatalf("WriteRecordFile failed: %v", err)
	}
	if filepath.Base(path) != "303.json" {
		t.Errorf("path = %s, want 303.json", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	want := "{\n  \"game_id\": \"303\",\n  \"name\": \"演習\",\n  \"detail\": \"今日中に\"\n}\n"
	if string(data) != want {
		t.Errorf("file content =\n%q\nwant\n%q", data, want)
	}

	back, err := ReadRecordFile(path)
	if err != nil {
		t.Fatalf("ReadRecordFile failed: %v", err)
	}
	if back.ID != "303" || back.Name() != "演習" {
		t.Errorf("read back %+v", back)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected 1 file in dir, got %d", len(entries))
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("replaces and sets mode", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "poi.json")
		if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
			t.Fatal(err)
		}

		if err := WriteFileAtomic(path, []byte("[]"), 0644); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "[]" {
			t.Errorf("content = %q, want []", data)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0644 {
			t.Errorf("mode = %v, want 0644", info.Mode().Perm())
		}
		if entries, _ := os.ReadDir(dir); len(entries) != 1 {
			t.Errorf("expected 1 file in dir, got %d", len(entries))
		}
	})

	t.Run("failure leaves no temp file", func(t *testing.T) {
		dir := t.TempDir()
		// A non-empty directory cannot be replaced by a file.
		target := filepath.Join(dir, "poi.json")
		if err := os.MkdirAll(filepath.Join(target, "keep"), 0755); err != nil {
			t.Fatal(err)
		}

		if err := WriteFileAtomic(target, []byte("[]"), 0644); err == nil {
			t.Fatal("expected error when the target is a directory")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Name() != "poi.json" {
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("directory holds %v, want only poi.json", names)
		}
	})
}
