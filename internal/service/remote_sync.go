// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/models"
)

// RemoteSyncAdapter is the "remote" backend. Reads and writes are served by
// the local cache; every write also queues an outbox item that a flush pass
// later applies to the remote object store. Remote failures never reach the
// caller: they are classified and recorded in the sync status.
type RemoteSyncAdapter struct {
	cache  LocalCache
	outbox store.OutboxQueue
	meta   store.SyncMetaStore
	remote adapter.ObjectStore
	logger *logger.Logger
	now    func() time.Time

	requestTimeout time.Duration
	flushInterval  time.Duration
	debounceDelay  time.Duration

	// flushSem admits one flush pass at a time.
	flushSem *semaphore.Weighted

	statusMu sync.Mutex
	status   models.SyncStatus

	initOnce sync.Once
	initErr  error

	schedMu     sync.Mutex
	lifetime    context.Context
	debounce    *time.Timer
	reconnected chan struct{}
}

var (
	_ storage.Adapter        = (*RemoteSyncAdapter)(nil)
	_ storage.StatusReporter = (*RemoteSyncAdapter)(nil)
	_ ReconnectNotifier      = (*RemoteSyncAdapter)(nil)
)

// NewRemoteSyncAdapter wires the engine. Background work starts with Init.
func NewRemoteSyncAdapter(
	cache LocalCache,
	outbox store.OutboxQueue,
	meta store.SyncMetaStore,
	remote adapter.ObjectStore,
	cfg config.ClientConfig,
	log *logger.Logger,
) *RemoteSyncAdapter {
	return &RemoteSyncAdapter{
		cache:          cache,
		outbox:         outbox,
		meta:           meta,
		remote:         remote,
		logger:         log.WithComponent("remote_sync"),
		now:            time.Now,
		requestTimeout: cfg.Remote.RequestTimeout,
		flushInterval:  cfg.Workers.FlushInterval,
		debounceDelay:  cfg.Workers.DebounceDelay,
		flushSem:       semaphore.NewWeighted(1),
		status:         models.DefaultSyncStatus(),
		reconnected:    make(chan struct{}, 1),
	}
}

// Init reconciles the local and remote vaults, flushes once and starts the
// periodic, debounced and reconnect-triggered flushing. Background work
// stops when ctx is done. Only the first call has an effect.
func (a *RemoteSyncAdapter) Init(ctx context.Context) error {
	a.initOnce.Do(func() {
		a.initErr = a.init(ctx)
	})
	return a.initErr
}

func (a *RemoteSyncAdapter) init(ctx context.Context) error {
	status, err := a.meta.Load(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "RemoteSyncAdapter.Init").Msg("starting with default sync status")
	}
	a.statusMu.Lock()
	a.status = status
	a.statusMu.Unlock()

	resolution, err := a.reconcile(ctx)
	if err != nil {
		a.logger.Err(err).Str("func", "RemoteSyncAdapter.Init").Msg("failed to reconcile vaults")
		return fmt.Errorf("failed to reconcile vaults: %w", err)
	}

	a.logger.Info().
		Str("func", "RemoteSyncAdapter.Init").
		Str("resolution", string(resolution)).
		Msg("vault reconciled")

	a.updateStatus(ctx, func(s *models.SyncStatus) {
		s.LastInitResolution = &resolution
	})

	if err := a.Flush(ctx); err != nil {
		a.logger.Err(err).Str("func", "RemoteSyncAdapter.Init").Msg("initial flush failed")
	}

	a.startScheduler(ctx)
	return nil
}

// reconcile decides between the remote and the local vault. The newer vault
// wins as a whole; equal timestamps favour the remote.
func (a *RemoteSyncAdapter) reconcile(ctx context.Context) (models.InitResolution, error) {
	local, err := a.cache.ReadVault(ctx)
	if err != nil {
		return "", err
	}

	remote, remoteErr := a.fetchVault(ctx)
	switch {
	case remoteErr == nil && remote != nil && (local == nil || remote.UpdatedAt >= local.UpdatedAt):
		if err := a.cache.CacheVault(ctx, *remote); err != nil {
			return "", err
		}
		if err := a.outbox.Delete(ctx, models.OutboxKeyVault); err != nil {
			return "", err
		}
		return models.InitRemoteApplied, nil

	case remoteErr == nil && remote != nil:
		return models.InitLocalPushed, a.enqueue(ctx, vaultItem())
	}

	if remoteErr != nil && !adapter.IsNotFound(remoteErr) {
		a.logger.Warn().Err(remoteErr).Str("func", "RemoteSyncAdapter.reconcile").Msg("remote vault unavailable, keeping local")
		a.recordFailure(ctx, remoteErr)
	}

	resolution := models.InitLocalPushed
	if local == nil {
		if err := a.cache.Init(ctx); err != nil {
			return "", err
		}
		resolution = models.InitCreatedDefault
	}
	return resolution, a.enqueue(ctx, vaultItem())
}

// fetchVault returns nil and no error when the remote holds no vault.
func (a *RemoteSyncAdapter) fetchVault(ctx context.Context) (*models.Vault, error) {
	var vault models.Vault
	found, err := a.getJSON(ctx, adapter.VaultKey, &vault)
	if err != nil || !found {
		return nil, err
	}
	vault.EnsureMaps()
	return &vault, nil
}

// SyncStatus returns a snapshot of the synchronization status.
func (a *RemoteSyncAdapter) SyncStatus(ctx context.Context) (models.SyncStatus, error) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	return a.status, nil
}

// updateStatus applies change to the in-memory status and persists it.
// Persisting is best effort: the in-memory copy stays authoritative.
func (a *RemoteSyncAdapter) updateStatus(ctx context.Context, change func(s *models.SyncStatus)) {
	a.statusMu.Lock()
	change(&a.status)
	snapshot := a.status
	a.statusMu.Unlock()

	if err := a.meta.Save(ctx, snapshot); err != nil {
		a.logger.Err(err).Str("func", "RemoteSyncAdapter.updateStatus").Msg("failed to persist sync status")
	}
}

// refreshPending recounts the outbox.
func (a *RemoteSyncAdapter) refreshPending(ctx context.Context) {
	count, err := a.outbox.Count(ctx)
	if err != nil {
		a.logger.Err(err).Str("func", "RemoteSyncAdapter.refreshPending").Msg("failed to count outbox")
		return
	}
	a.updateStatus(ctx, func(s *models.SyncStatus) {
		s.PendingCount = count
	})
}

// recordFailure classifies err into the offline or error state.
func (a *RemoteSyncAdapter) recordFailure(ctx context.Context, err error) {
	msg := adapter.Describe(err)
	state := stateForCategory(adapter.CategoryOf(err))
	a.updateStatus(ctx, func(s *models.SyncStatus) {
		s.State = state
		s.LastError = &msg
	})
}

// stateForCategory maps transient failures to offline and everything else to
// error.
func stateForCategory(category adapter.Category) models.SyncState {
	switch category {
	case adapter.CategoryTimeout, adapter.CategoryNetwork, adapter.CategoryCORS:
		return models.SyncStateOffline
	default:
		return models.SyncStateError
	}
}

// callRemote bounds a single remote call by the request timeout.
func (a *RemoteSyncAdapter) callRemote(ctx context.Context, call func(ctx context.Context) error) error {
	if a.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.requestTimeout)
		defer cancel()
	}
	return call(ctx)
}

// getObject reports found=false for a missing object.
func (a *RemoteSyncAdapter) getObject(ctx context.Context, key string) (adapter.Object, bool, error) {
	var obj adapter.Object
	err := a.callRemote(ctx, func(ctx context.Context) error {
		var err error
		obj, err = a.remote.Get(ctx, key)
		return err
	})
	if adapter.IsNotFound(err) {
		return adapter.Object{}, false, nil
	}
	if err != nil {
		return adapter.Object{}, false, err
	}
	return obj, true, nil
}

func (a *RemoteSyncAdapter) getJSON(ctx context.Context, key string, v any) (bool, error) {
	obj, found, err := a.getObject(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(obj.Body, v); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrDecodingRemoteObject, key, err)
	}
	return true, nil
}

func (a *RemoteSyncAdapter) putObject(ctx context.Context, key string, body []byte, contentType string) error {
	return a.callRemote(ctx, func(ctx context.Context) error {
		return a.remote.Put(ctx, key, body, contentType)
	})
}

func (a *RemoteSyncAdapter) deleteObject(ctx context.Context, key string) error {
	return a.callRemote(ctx, func(ctx context.Context) error {
		return a.remote.Delete(ctx, key)
	})
}
