package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kcwiki/questtool/internal/logging"
	"github.com/kcwiki/questtool/internal/quest"
)

// setupTestDB creates a temporary cache for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "cache", "test.db"), logging.Discard())
	if err != nil {
		t.Fatalf("failed to open test cache: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.InitSchema(context.Background()); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	return db
}

func testRecords(t *testing.T) []*quest.Record {
	t.Helper()

	records, err := quest.DecodeCollection([]byte(`[
		{"game_id": 101, "wiki_id": "A01", "name": "はじめての「編成」！"},
		{"game_id": 102, "wiki_id": "A02", "name": "駆逐隊を編成せよ！"},
		{"game_id": 214, "wiki_id": "Bd5", "name": "あ号作戦"}
	]`))
	if err != nil {
		t.Fatalf("DecodeCollection failed: %v", err)
	}
	return records
}

func ids(records []*quest.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestRebuildAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Rebuild(ctx, testRecords(t)); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	n, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}

	r, err := db.Get(ctx, "214")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if r.Name() != "あ号作戦" {
		t.Errorf("Get(214).Name() = %q", r.Name())
	}

	if _, err := db.Get(ctx, "999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(999) error = %v, want ErrNotFound", err)
	}
}

func TestRebuild_ReplacesContents(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Rebuild(ctx, testRecords(t)); err != nil {
		t.Fatalf("first Rebuild failed: %v", err)
	}

	smaller, err := quest.DecodeCollection([]byte(`[{"game_id": 7, "wiki_id": "C01", "name": "演習"}]`))
	if err != nil {
		t.Fatalf("DecodeCollection failed: %v", err)
	}
	if err := db.Rebuild(ctx, smaller); err != nil {
		t.Fatalf("second Rebuild failed: %v", err)
	}

	n, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestSearch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Rebuild(ctx, testRecords(t)); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"by normalized code", "A1", []string{"101"}},
		{"by padded code", "A01", []string{"101"}},
		{"by code prefix", "A", []string{"101", "102"}},
		{"by name", "編成", []string{"101", "102"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Search(ctx, tt.text, 0)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestRawBodyPreserved(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	input := `{"zeta":1,"game_id":5,"alpha":"β"}`
	r, err := quest.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := db.Rebuild(ctx, []*quest.Record{r}); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	got, err := db.Get(ctx, "5")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Raw()) != input {
		t.Errorf("Raw() = %s, want %s", got.Raw(), input)
	}
}

func TestLastSync(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.LastSync(ctx); !errors.Is(err, ErrNeverSynced) {
		t.Fatalf("LastSync() error = %v, want ErrNeverSynced", err)
	}

	if err := db.Rebuild(ctx, testRecords(t)); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	first, err := db.LastSync(ctx)
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if first.Quests != 3 || first.ID == "" || first.SyncedAt.IsZero() {
		t.Errorf("LastSync() = %+v", first)
	}

	if err := db.Rebuild(ctx, testRecords(t)[:1]); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	second, err := db.LastSync(ctx)
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if second.ID == first.ID || second.Quests != 1 {
		t.Errorf("LastSync() after second rebuild = %+v, first = %+v", second, first)
	}
}
