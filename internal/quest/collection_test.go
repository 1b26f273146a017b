package quest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeCollection(t *testing.T) {
	records, err := DecodeCollection([]byte(`[{"game_id":2,"name":"B"},{"game_id":"1","name":"A"}]`))
	if err != nil {
		t.Fatalf("DecodeCollection failed: %v", err)
	}

	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"2", "1"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCollection_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"object instead of array", `{"game_id":1}`, ErrParse},
		{"truncated", `[{"game_id":1}`, ErrParse},
		{"missing id", `[{"game_id":1},{"name":"x"}]`, ErrMissingIdentifier},
		{"element not object", `[1]`, ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCollection([]byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeCollection() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeCollection(t *testing.T) {
	records, err := DecodeCollection([]byte(`[{"game_id":1,"name":"A"},{"game_id":2,"name":"B"}]`))
	if err != nil {
		t.Fatalf("DecodeCollection failed: %v", err)
	}

	got, err := EncodeCollection(records, 2)
	if err != nil {
		t.Fatalf("EncodeCollection failed: %v", err)
	}
	want := `[
  {
    "game_id": 1,
    "name": "A"
  },
  {
    "game_id": 2,
    "name": "B"
  }
]`
	if string(got) != want {
		t.Errorf("EncodeCollection() =\n%s\nwant\n%s", got, want)
	}

	empty, err := EncodeCollection(nil, 2)
	if err != nil {
		t.Fatalf("EncodeCollection(nil) failed: %v", err)
	}
	if string(empty) != "[]" {
		t.Errorf("EncodeCollection(nil) = %s, want []", empty)
	}
}

func TestWriteAndReadCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poi.json")

	records, err := DecodeCollection([]byte(`[{"game_id":1,"name":"一"}]`))
	if err != nil {
		t.Fatalf("DecodeCollection failed: %v", err)
	}
	if err := WriteCollection(path, records, 0); err != nil {
		t.Fatalf("WriteCollection failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != `[{"game_id":1,"name":"一"}]` {
		t.Errorf("aggregate = %s", data)
	}

	back, err := ReadCollection(path)
	if err != nil {
		t.Fatalf("ReadCollection failed: %v", err)
	}
	if len(back) != 1 || back[0].Name() != "一" {
		t.Errorf("ReadCollection() = %v", back)
	}
}

func TestSet(t *testing.T) {
	parse := func(s string) *Record {
		t.Helper()
		r, err := Parse([]byte(s))
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", s, err)
		}
		return r
	}

	s := SetOf([]*Record{
		parse(`{"game_id":3,"name":"C"}`),
		parse(`{"game_id":1,"name":"A"}`),
	})

	if replaced := s.Put(parse(`{"game_id":"3","name":"C2"}`)); !replaced {
		t.Error("Put of existing id should report replaced")
	}
	if replaced := s.Put(parse(`{"game_id":2,"name":"B"}`)); replaced {
		t.Error("Put of new id should not report replaced")
	}

	if diff := cmp.Diff([]string{"3", "1", "2"}, s.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	if r, ok := s.Get("3"); !ok || r.Name() != "C2" {
		t.Errorf("Get(3) = %v, %v", r, ok)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	var names []string
	for _, r := range s.Records() {
		names = append(names, r.Name())
	}
	if diff := cmp.Diff([]string{"C2", "A", "B"}, names); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}
}
