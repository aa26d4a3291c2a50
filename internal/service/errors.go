package service

import "errors"

var (
	// ErrUnknownBackend is returned by the factory for an unsupported
	// storage backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrDecodingRemoteObject is returned when a fetched object is not valid
	// JSON of the expected shape.
	ErrDecodingRemoteObject = errors.New("failed to decode remote object")
)
