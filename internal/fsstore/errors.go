package fsstore

import "errors"

var (
	// ErrDecodingManifest is returned when vault.json exists but cannot be
	// decoded.
	ErrDecodingManifest = errors.New("failed to decode manifest")

	// ErrDecodingDocument is returned for a note or template file that is not
	// valid JSON.
	ErrDecodingDocument = errors.New("failed to decode document")
)
