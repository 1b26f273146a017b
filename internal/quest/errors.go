package quest

import "errors"

// Errors returned while decoding quest records.
//
//	if errors.Is(err, quest.ErrMissingIdentifier) {
//	    // the record has no game_id
//	}
var (
	// ErrMissingIdentifier is returned when a record has no game_id field.
	ErrMissingIdentifier = errors.New("missing attribute 'game_id'")

	// ErrInvalidIdentifier is returned when game_id is present but is not a
	// non-negative integer or a string of decimal digits.
	ErrInvalidIdentifier = errors.New("invalid attribute 'game_id'")

	// ErrParse is returned when a document is not valid JSON or does not
	// have the expected shape (object for a record, array for a collection).
	ErrParse = errors.New("json parse error")

	// ErrNoRecordDir is returned when the record directory does not exist.
	ErrNoRecordDir = errors.New("record directory does not exist")
)
