// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the merged [StructuredConfig] for values that can never be
// made valid by defaults. Missing values are accepted here and filled later
// by [GetClientConfig].
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case "", BackendLocal, BackendDirectory, BackendRemote:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, cfg.Storage.Backend)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	switch cfg.Storage.Backend {
	case BackendLocal:
		if cfg.Storage.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	case BackendDirectory:
		if cfg.Storage.DirRoot == "" {
			return ErrInvalidStorageConfigs
		}
	case BackendRemote:
		if cfg.Storage.DSN == "" {
			return ErrInvalidStorageConfigs
		}
		if err := cfg.Remote.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, cfg.Storage.Backend)
	}

	if cfg.Workers.FlushInterval <= 0 || cfg.Workers.DebounceDelay < 0 || cfg.Workers.ProbeInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (r ClientRemote) validate() error {
	if r.RequestTimeout <= 0 {
		return ErrInvalidRemoteConfigs
	}

	switch r.Kind {
	case RemoteKindS3:
		if r.Bucket == "" {
			return ErrInvalidRemoteConfigs
		}
	case RemoteKindHTTP:
		if r.Endpoint == "" {
			return ErrInvalidRemoteConfigs
		}
	default:
		return ErrInvalidRemoteConfigs
	}

	return nil
}
