// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage selects the storage backend and holds its local settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Remote holds the object-store settings used by the remote backend.
	Remote Remote `envPrefix:"REMOTE_"`

	// Workers holds timing settings of the background synchronization.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level values.
type App struct {
	// VaultName is the name given to a freshly created default vault.
	// Env: APP_VAULT_NAME
	VaultName string `env:"VAULT_NAME"`

	// LogFile is the path of the log file. Empty means "logs" next to the
	// executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage selects the backend and configures local persistence.
type Storage struct {
	// Backend is one of "local", "directory" or "remote".
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// DB holds the local SQLite cache settings.
	DB DB `envPrefix:"DB_"`

	// Dir holds the directory backend settings.
	Dir Dir `envPrefix:"DIR_"`
}

// DB holds the local SQLite database settings.
type DB struct {
	// DSN is the path of the SQLite database file.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Dir holds the directory backend settings.
type Dir struct {
	// Root is the directory the user granted access to.
	// Env: STORAGE_DIR_ROOT
	Root string `env:"ROOT"`
}

// Remote holds the object-store connection settings.
type Remote struct {
	// Kind is "s3" or "http".
	// Env: REMOTE_KIND
	Kind string `env:"KIND"`

	// Endpoint is the base URL of the object store or gateway.
	// Env: REMOTE_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// Bucket is the S3 bucket name.
	// Env: REMOTE_BUCKET
	Bucket string `env:"BUCKET"`

	// Region is the S3 signing region.
	// Env: REMOTE_REGION
	Region string `env:"REGION"`

	// AccessKey and SecretKey are static S3 credentials.
	// Env: REMOTE_ACCESS_KEY, REMOTE_SECRET_KEY
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`

	// Token is the bearer token sent to the HTTP gateway.
	// Env: REMOTE_TOKEN
	Token string `env:"TOKEN"`

	// Prefix is prepended to every object key (e.g. "users/42/").
	// Env: REMOTE_PREFIX
	Prefix string `env:"PREFIX"`

	// UsePathStyle forces path-style S3 addressing (MinIO and friends).
	// Env: REMOTE_USE_PATH_STYLE
	UsePathStyle bool `env:"USE_PATH_STYLE"`

	// RequestTimeout bounds every single remote call.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background synchronization timings.
type Workers struct {
	// FlushInterval is the period of the periodic flush.
	// Env: WORKERS_FLUSH_INTERVAL
	FlushInterval time.Duration `env:"FLUSH_INTERVAL"`

	// DebounceDelay is the quiet period after the last write before a flush.
	// Env: WORKERS_DEBOUNCE_DELAY
	DebounceDelay time.Duration `env:"DEBOUNCE_DELAY"`

	// ProbeInterval is how often the connectivity monitor pings the remote.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. See the package documentation for the priority order.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(defaultDotEnvPath).
		withEnv().
		withFlags(commandLineArgs()).
		withJSON().
		build()
}
