package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/fsstore"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/internal/workers"
)

// Backend is the storage adapter selected by configuration together with the
// background workers it needs.
type Backend struct {
	Adapter storage.Adapter
	Workers *workers.Workers

	local *store.LocalStorages
}

// NewBackend builds the backend named by cfg.Storage.Backend. Every backend
// opens the SQLite database: the local backend stores everything there, the
// directory backend keeps UI state and the search index there, and the remote
// backend uses it as cache, outbox and status store.
func NewBackend(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*Backend, error) {
	local, err := store.NewLocalStorages(ctx, cfg.Storage.DSN, cfg.App.VaultName, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	backend := &Backend{Workers: workers.NewWorkers(), local: local}

	switch cfg.Storage.Backend {
	case config.BackendLocal:
		backend.Adapter = local.Cache

	case config.BackendDirectory:
		dir, err := fsstore.NewOnDisk(cfg.Storage.DirRoot, cfg.App.VaultName, local.Cache, log)
		if err != nil {
			_ = local.Close()
			return nil, err
		}
		backend.Adapter = dir

	case config.BackendRemote:
		objects, err := adapter.NewObjectStore(ctx, cfg.Remote, log)
		if err != nil {
			_ = local.Close()
			return nil, fmt.Errorf("failed to create object store: %w", err)
		}
		remote := NewRemoteSyncAdapter(local.Cache, local.Outbox, local.SyncMeta, objects, *cfg, log)
		backend.Adapter = remote
		backend.Workers.Add(NewConnectivityMonitor(objects, remote, cfg.Workers.ProbeInterval, cfg.Remote.RequestTimeout, log))

	default:
		_ = local.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage.Backend)
	}

	log.Info().
		Str("func", "NewBackend").
		Str("backend", cfg.Storage.Backend).
		Msg("storage backend ready")

	return backend, nil
}

// Close releases the local database.
func (b *Backend) Close() error {
	return b.local.Close()
}
