package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

//go:generate mockgen -source=ids.go -destination=../mock/ids_mock.go -package=mock

// IDGenerator produces entity ids.
type IDGenerator interface {
	Generate() string
}

// ValidateID rejects ids that cannot name a single file or object: empty
// ids, path separators and dot segments.
func ValidateID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if strings.ContainsAny(id, `/\`+"\x00") || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if clean := filepath.Clean(id); clean == "." || clean != id {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// ResolveID returns the id a document is stored under. An empty docID takes
// the argument; a different non-empty docID is rejected.
func ResolveID(id, docID string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	if docID != "" && docID != id {
		return "", fmt.Errorf("%w: %q != %q", ErrIDMismatch, docID, id)
	}
	return id, nil
}
