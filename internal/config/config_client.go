package config

import (
	"fmt"
	"time"
)

// Storage backends accepted in Storage.Backend.
const (
	BackendLocal     = "local"
	BackendDirectory = "directory"
	BackendRemote    = "remote"
)

// Object store kinds accepted in Remote.Kind.
const (
	RemoteKindS3   = "s3"
	RemoteKindHTTP = "http"
)

const (
	defaultVaultName      = "My Vault"
	defaultDSN            = "notevault.db"
	defaultRegion         = "us-east-1"
	defaultRequestTimeout = 15 * time.Second
	defaultFlushInterval  = 30 * time.Second
	defaultDebounceDelay  = 2 * time.Second
	defaultProbeInterval  = 15 * time.Second
)

// ClientApp holds application-level settings of the runtime.
type ClientApp struct {
	// VaultName is used when a default vault has to be created.
	VaultName string
	// LogFile is the log destination; empty means the default location.
	LogFile string
}

// ClientStorage groups the local storage settings.
type ClientStorage struct {
	// Backend is one of [BackendLocal], [BackendDirectory], [BackendRemote].
	Backend string
	// DSN is the SQLite cache database path. Used by the local and remote
	// backends, and by the directory backend for ui-state/search-index.
	DSN string
	// DirRoot is the root directory of the directory backend.
	DirRoot string
}

// ClientRemote holds object-store connection settings.
type ClientRemote struct {
	Kind           string
	Endpoint       string
	Bucket         string
	Region         string
	AccessKey      string
	SecretKey      string
	Token          string
	Prefix         string
	UsePathStyle   bool
	RequestTimeout time.Duration
}

// ClientWorkers contains background synchronization timings.
type ClientWorkers struct {
	FlushInterval time.Duration
	DebounceDelay time.Duration
	ProbeInterval time.Duration
}

// ClientConfig is the validated runtime configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Storage ClientStorage
	Remote  ClientRemote
	Workers ClientWorkers
}

// GetClientConfig builds and validates the runtime config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], fills defaults for
// unset fields and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			VaultName: cfg.App.VaultName,
			LogFile:   cfg.App.LogFile,
		},
		Storage: ClientStorage{
			Backend: cfg.Storage.Backend,
			DSN:     cfg.Storage.DB.DSN,
			DirRoot: cfg.Storage.Dir.Root,
		},
		Remote: ClientRemote{
			Kind:           cfg.Remote.Kind,
			Endpoint:       cfg.Remote.Endpoint,
			Bucket:         cfg.Remote.Bucket,
			Region:         cfg.Remote.Region,
			AccessKey:      cfg.Remote.AccessKey,
			SecretKey:      cfg.Remote.SecretKey,
			Token:          cfg.Remote.Token,
			Prefix:         cfg.Remote.Prefix,
			UsePathStyle:   cfg.Remote.UsePathStyle,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Workers: ClientWorkers{
			FlushInterval: cfg.Workers.FlushInterval,
			DebounceDelay: cfg.Workers.DebounceDelay,
			ProbeInterval: cfg.Workers.ProbeInterval,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.App.VaultName == "" {
		cfg.App.VaultName = defaultVaultName
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendLocal
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = defaultDSN
	}
	if cfg.Remote.Region == "" {
		cfg.Remote.Region = defaultRegion
	}
	if cfg.Remote.RequestTimeout == 0 {
		cfg.Remote.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.FlushInterval == 0 {
		cfg.Workers.FlushInterval = defaultFlushInterval
	}
	if cfg.Workers.DebounceDelay == 0 {
		cfg.Workers.DebounceDelay = defaultDebounceDelay
	}
	if cfg.Workers.ProbeInterval == 0 {
		cfg.Workers.ProbeInterval = defaultProbeInterval
	}
}
