// Package sync keeps the aggregate quest file and the record directory in
// step.
//
// Three operations are supported:
//
//   - Split: aggregate file -> one {game_id}.json per record
//   - Merge: record directory -> aggregate file, optionally patching over
//     the existing aggregate
//   - Delete: remove every record file from the record directory
//
// All operations overwrite. Each call is one full load/transform/store cycle
// with nothing cached between calls.
package sync

import "github.com/kcwiki/questtool/internal/quest"

// Synchronizer moves quest records between the aggregate file and the
// record directory.
type Synchronizer interface {
	// Split writes every aggregate record to its own file.
	//
	// All records are validated before the first file is written: a record
	// without game_id aborts the split and no file is touched. Files for
	// identifiers that are no longer in the aggregate are left alone.
	//
	// Example:
	//   res, err := s.Split()
	Split() (*SplitResult, error)

	// Merge rebuilds the aggregate file from the record directory.
	//
	// In patch mode the existing aggregate seeds the result and directory
	// records overwrite seed entries with the same identifier. Otherwise the
	// result holds only directory records. The aggregate is written once,
	// after the whole result is assembled.
	//
	// Example:
	//   res, err := s.Merge(sync.MergeOptions{Patch: true})
	Merge(opts MergeOptions) (*MergeResult, error)

	// Delete removes every record file from the record directory.
	//
	// A failed removal is logged and reported in the result; the remaining
	// files are still removed. The returned error wraps ErrFileRemoval when
	// any removal failed.
	Delete() (*DeleteResult, error)
}

// MergeOptions selects the merge policy.
type MergeOptions struct {
	// Patch seeds the result from the existing aggregate.
	Patch bool

	// Strict aborts the merge on the first malformed record file instead of
	// skipping it.
	Strict bool
}

// SplitResult reports the files written by Split.
type SplitResult struct {
	Written int
	Files   []string
}

// MergeResult reports the outcome of Merge.
type MergeResult struct {
	// Records is the merged collection in the order it was written.
	Records []*quest.Record

	// Seeded is the number of records taken from the existing aggregate.
	Seeded int
	// Loaded is the number of record files merged in.
	Loaded int
	// Replaced counts loaded records that overwrote a seed entry.
	Replaced int
	// Skipped lists record files that could not be parsed.
	Skipped []FileError
}

// DeleteResult reports the outcome of Delete.
type DeleteResult struct {
	Removed []string
	Failed  []FileError
}

// FileError pairs a file with the error it produced.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}
