package storage

import "errors"

var ErrNotFound = errors.New("resource not found")
var ErrConflict = errors.New("resource conflict (e.g., duplicate key)")

// ErrVersionConflict means an optimistic-lock update lost the race: the row's
// version moved between read and write.
var ErrVersionConflict = errors.New("resource version conflict")
