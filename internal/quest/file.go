package quest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
)

// Extension is the file extension of record files.
const Extension = ".json"

// Filename returns the record filename for an identifier: {id}.json
func Filename(id string) string {
	return id + Extension
}

// IDFromFilename extracts the identifier from a record filename.
// Only names of the form {digits}.json are record files.
//
// Valid:   101.json, 2001.json
// Invalid: abc.json, notes.txt, 101.json.bak, .101.json
func IDFromFilename(name string) (string, bool) {
	stem, ok := strings.CutSuffix(name, Extension)
	if !ok || !isDigits(stem) {
		return "", false
	}
	return stem, true
}

// ListRecordFiles returns the names of all record files in dir, sorted.
// Sub-directories and files that are not record files are skipped.
// A missing directory is an error (ErrNoRecordDir), never an empty list.
func ListRecordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRecordDir, dir)
		}
		return nil, fmt.Errorf("failed to read record directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := IDFromFilename(entry.Name()); !ok {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// ReadRecordFile reads and parses a single record file.
func ReadRecordFile(path string) (*Record, error) {
	// #nosec G304 - path comes from a directory listing of the record dir
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file %s: %w", path, err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("record file %s: %w", path, err)
	}

	return r, nil
}

// WriteRecordFile writes r to dir/{id}.json with the given indent and a
// trailing newline. It returns the written path.
func WriteRecordFile(dir string, r *Record, indent int) (string, error) {
	data, err := r.Encode(indent)
	if err != nil {
		return "", fmt.Errorf("failed to encode record %s: %w", r.ID, err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, r.Filename())
	if err := WriteFileAtomic(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}

// WriteFileAtomic writes data to a temp file next to path, syncs it and
// renames it into place, so readers never observe a half-written file. The
// temp file is removed on every failure path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// atomic.WriteFile creates new files 0600
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	return nil
}
