package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/notevault/models"
)

// Writes go to the cache first. On success the matching outbox items are
// queued and a debounced flush is scheduled; the remote is never contacted
// synchronously.

func (a *RemoteSyncAdapter) WriteVault(ctx context.Context, vault models.Vault) error {
	if err := a.cache.WriteVault(ctx, vault); err != nil {
		return err
	}
	return a.enqueue(ctx, vaultItem())
}

func (a *RemoteSyncAdapter) WriteNote(ctx context.Context, id string, doc models.NoteDocument, markdown string) error {
	if err := a.cache.WriteNote(ctx, id, doc, markdown); err != nil {
		return err
	}
	return a.enqueue(ctx, noteItem(id, models.OutboxKindNote), vaultItem())
}

func (a *RemoteSyncAdapter) DeleteNoteSoft(ctx context.Context, id string) error {
	if err := a.cache.DeleteNoteSoft(ctx, id); err != nil {
		return err
	}
	return a.enqueue(ctx, noteItem(id, models.OutboxKindNote), vaultItem())
}

func (a *RemoteSyncAdapter) RestoreNote(ctx context.Context, id string) error {
	if err := a.cache.RestoreNote(ctx, id); err != nil {
		return err
	}
	return a.enqueue(ctx, noteItem(id, models.OutboxKindNote), vaultItem())
}

// DeleteNotePermanent replaces any pending write of the note: both share the
// note's outbox key.
func (a *RemoteSyncAdapter) DeleteNotePermanent(ctx context.Context, id string) error {
	if err := a.cache.DeleteNotePermanent(ctx, id); err != nil {
		return err
	}
	return a.enqueue(ctx, noteItem(id, models.OutboxKindDeleteNotePermanent), vaultItem())
}

func (a *RemoteSyncAdapter) WriteTemplate(ctx context.Context, id string, doc models.TemplateDocument, markdown string) error {
	if err := a.cache.WriteTemplate(ctx, id, doc, markdown); err != nil {
		return err
	}
	return a.enqueue(ctx, templateItem(id, models.OutboxKindTemplate), vaultItem())
}

func (a *RemoteSyncAdapter) DeleteTemplate(ctx context.Context, id string) error {
	if err := a.cache.DeleteTemplate(ctx, id); err != nil {
		return err
	}
	return a.enqueue(ctx, templateItem(id, models.OutboxKindDeleteTemplate), vaultItem())
}

func (a *RemoteSyncAdapter) WriteAsset(ctx context.Context, asset models.Asset) error {
	if err := a.cache.WriteAsset(ctx, asset); err != nil {
		return err
	}
	return a.enqueue(ctx, assetItem(asset.ID), vaultItem())
}

// DeleteAsset queues the same item as a write; the flush pass deletes the
// remote object once the asset is gone locally.
func (a *RemoteSyncAdapter) DeleteAsset(ctx context.Context, id string) error {
	if err := a.cache.DeleteAsset(ctx, id); err != nil {
		return err
	}
	return a.enqueue(ctx, assetItem(id), vaultItem())
}

func (a *RemoteSyncAdapter) WriteUIState(ctx context.Context, state json.RawMessage) error {
	if err := a.cache.WriteUIState(ctx, state); err != nil {
		return err
	}
	return a.enqueue(ctx, models.OutboxItem{Key: models.OutboxKeyUIState, Kind: models.OutboxKindUIState})
}

func (a *RemoteSyncAdapter) WriteSearchIndex(ctx context.Context, index string) error {
	if err := a.cache.WriteSearchIndex(ctx, index); err != nil {
		return err
	}
	return a.enqueue(ctx, models.OutboxItem{Key: models.OutboxKeySearchIndex, Kind: models.OutboxKindSearchIndex})
}

// enqueue upserts items in order, refreshes the pending count and schedules
// a debounced flush.
func (a *RemoteSyncAdapter) enqueue(ctx context.Context, items ...models.OutboxItem) error {
	for _, item := range items {
		item.QueuedAt = a.now()
		if err := a.outbox.Put(ctx, item); err != nil {
			a.logger.Err(err).
				Str("func", "RemoteSyncAdapter.enqueue").
				Str("key", item.Key).
				Msg("failed to queue outbox item")
			return err
		}
	}

	a.refreshPending(ctx)
	a.scheduleFlush()
	return nil
}

func vaultItem() models.OutboxItem {
	return models.OutboxItem{Key: models.OutboxKeyVault, Kind: models.OutboxKindVault}
}

func noteItem(id string, kind models.OutboxKind) models.OutboxItem {
	return models.OutboxItem{Key: models.NoteOutboxKey(id), Kind: kind, EntityID: id}
}

func templateItem(id string, kind models.OutboxKind) models.OutboxItem {
	return models.OutboxItem{Key: models.TemplateOutboxKey(id), Kind: kind, EntityID: id}
}

func assetItem(id string) models.OutboxItem {
	return models.OutboxItem{Key: models.AssetOutboxKey(id), Kind: models.OutboxKindAsset, EntityID: id}
}
