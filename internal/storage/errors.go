package storage

import "errors"

var (
	// ErrNoteNotFound is returned by soft delete and restore of a note that
	// does not exist.
	ErrNoteNotFound = errors.New("note not found")

	// ErrIDMismatch is returned when the id argument of a write differs from
	// the id carried by the document.
	ErrIDMismatch = errors.New("document id does not match the given id")

	// ErrEmptyID is returned when an entity id is empty.
	ErrEmptyID = errors.New("empty entity id")

	// ErrInvalidID is returned for ids that would escape their folder or
	// object prefix.
	ErrInvalidID = errors.New("invalid entity id")
)
