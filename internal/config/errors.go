package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidBackend indicates an unknown storage backend name.
	ErrInvalidBackend = errors.New("invalid storage backend")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty DSN or a missing directory root).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidRemoteConfigs indicates invalid object-store settings
	// (for example, an unknown kind, missing endpoint or bucket).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
