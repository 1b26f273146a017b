package sync

import "errors"

// ErrFileRemoval is returned by Delete when at least one record file could
// not be removed.
var ErrFileRemoval = errors.New("failed to remove record file")
