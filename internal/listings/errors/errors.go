package errors

import "errors"

var (
	ErrNotFound = errors.New("listing not found")

	// ErrRevisionMismatch means the document changed between the read and the
	// write of a read-modify-write cycle. Callers re-read and re-submit.
	ErrRevisionMismatch = errors.New("listing revision mismatch")

	ErrDuplicateID = errors.New("listing id already exists")
)
