package sync

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kcwiki/questtool/internal/logging"
	"github.com/kcwiki/questtool/internal/quest"
)

// Config locates the two stores and fixes the output format.
type Config struct {
	// Aggregate is the aggregate collection file.
	Aggregate string
	// RecordDir is the record directory.
	RecordDir string
	// Indent is the JSON indent width; 0 writes compact JSON.
	Indent int
}

// syncer implements the Synchronizer interface.
type syncer struct {
	cfg    Config
	logger *logging.Logger
}

// New creates a new Synchronizer.
//
// If logger is nil, a default logger writing to stderr is used.
//
// Example:
//
//	s := sync.New(sync.Config{
//	    Aggregate: "quest/poi.json",
//	    RecordDir: "quest",
//	    Indent:    2,
//	}, nil)
//	if _, err := s.Split(); err != nil {
//	    return err
//	}
func New(cfg Config, logger *logging.Logger) Synchronizer {
	if logger == nil {
		logger = logging.Default("sync")
	}
	return &syncer{
		cfg:    cfg,
		logger: logger,
	}
}

// Split implements Synchronizer.Split.
func (s *syncer) Split() (*SplitResult, error) {
	records, err := quest.ReadCollection(s.cfg.Aggregate)
	if err != nil {
		return nil, fmt.Errorf("failed to load aggregate: %w", err)
	}
	s.logger.Debugf("quest count %d", len(records))
	if set := quest.SetOf(records); set.Len() != len(records) {
		s.logger.Warnf("aggregate has %d duplicate game_id entries; later entries win", len(records)-set.Len())
	}

	result := &SplitResult{Files: make([]string, 0, len(records))}
	for _, r := range records {
		path, err := quest.WriteRecordFile(s.cfg.RecordDir, r, s.cfg.Indent)
		if err != nil {
			return result, fmt.Errorf("failed to write quest %s: %w", r.ID, err)
		}
		result.Files = append(result.Files, path)
		result.Written++
	}

	s.logger.Printf("Split %d quests into %s", result.Written, s.cfg.RecordDir)
	return result, nil
}

// Merge implements Synchronizer.Merge.
func (s *syncer) Merge(opts MergeOptions) (*MergeResult, error) {
	set := quest.NewSet()
	result := &MergeResult{}

	if opts.Patch {
		seed, err := quest.ReadCollection(s.cfg.Aggregate)
		if err != nil {
			return nil, fmt.Errorf("failed to load aggregate for patching: %w", err)
		}
		for _, r := range seed {
			set.Put(r)
		}
		result.Seeded = set.Len()
		s.logger.Debugf("seeded %d quests from %s", result.Seeded, s.cfg.Aggregate)
	}

	names, err := quest.ListRecordFiles(s.cfg.RecordDir)
	if err != nil {
		return nil, err
	}
	s.logger.Debugf("quest files %v", names)

	for _, name := range names {
		path := filepath.Join(s.cfg.RecordDir, name)

		r, err := quest.ReadRecordFile(path)
		if err != nil {
			// Missing identifiers are always fatal; malformed files are
			// fatal only in strict mode.
			if opts.Strict || !errors.Is(err, quest.ErrParse) {
				return nil, err
			}
			s.logger.Warnf("skipping malformed quest file %s: %v", path, err)
			result.Skipped = append(result.Skipped, FileError{Path: path, Err: err})
			continue
		}

		if id, _ := quest.IDFromFilename(name); id != r.ID {
			s.logger.Warnf("quest file %s holds game_id %s", name, r.ID)
		}

		if set.Put(r) {
			result.Replaced++
		}
		result.Loaded++
	}

	result.Records = set.Records()
	if s.logger.DebugEnabled() {
		s.logger.Debugf("merged order %v", set.IDs())
	}
	if err := quest.WriteCollection(s.cfg.Aggregate, result.Records, s.cfg.Indent); err != nil {
		return nil, fmt.Errorf("failed to write aggregate: %w", err)
	}

	s.logger.Printf("Merged %d quests into %s: seeded=%d, loaded=%d (replaced=%d, skipped=%d)",
		len(result.Records), s.cfg.Aggregate, result.Seeded, result.Loaded, result.Replaced, len(result.Skipped))

	return result, nil
}

// Delete implements Synchronizer.Delete.
func (s *syncer) Delete() (*DeleteResult, error) {
	names, err := quest.ListRecordFiles(s.cfg.RecordDir)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{}
	var errs []error
	for _, name := range names {
		path := filepath.Join(s.cfg.RecordDir, name)
		if err := os.Remove(path); err != nil {
			s.logger.Warnf("failed to remove %s: %v", path, err)
			fe := FileError{Path: path, Err: err}
			result.Failed = append(result.Failed, fe)
			errs = append(errs, fe)
			continue
		}
		result.Removed = append(result.Removed, path)
	}

	s.logger.Printf("Removed %d quest files from %s (failed=%d)", len(result.Removed), s.cfg.RecordDir, len(result.Failed))

	if len(errs) > 0 {
		return result, fmt.Errorf("%w: %w", ErrFileRemoval, errors.Join(errs...))
	}
	return result, nil
}
