package service

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/models"
)

// Reads are served from the cache. A miss falls through to the remote store
// and populates the cache; remote failures on a miss are logged and read as
// "absent". A miss on a key with a queued change is final: the local delete
// or empty value has not reached the remote yet.

func (a *RemoteSyncAdapter) ReadVault(ctx context.Context) (*models.Vault, error) {
	vault, err := a.cache.ReadVault(ctx)
	if err != nil || vault != nil {
		return vault, err
	}

	remote, err := a.fetchVault(ctx)
	if err != nil {
		a.logRemoteMiss("RemoteSyncAdapter.ReadVault", adapter.VaultKey, err)
		return nil, nil
	}
	if remote == nil {
		return nil, nil
	}
	if err := a.cache.CacheVault(ctx, *remote); err != nil {
		return nil, err
	}
	return remote, nil
}

func (a *RemoteSyncAdapter) ListNotes(ctx context.Context) ([]models.NoteIndexEntry, error) {
	return a.cache.ListNotes(ctx)
}

func (a *RemoteSyncAdapter) ListTemplates(ctx context.Context) ([]models.TemplateIndexEntry, error) {
	return a.cache.ListTemplates(ctx)
}

func (a *RemoteSyncAdapter) ReadNote(ctx context.Context, id string) (*models.NoteDocument, error) {
	note, err := a.cache.ReadNote(ctx, id)
	if err != nil || note != nil {
		return note, err
	}
	if pending, err := a.pendingLocally(ctx, models.NoteOutboxKey(id)); pending || err != nil {
		return nil, err
	}

	var remote models.NoteDocument
	found, err := a.getJSON(ctx, adapter.NoteJSONKey(id), &remote)
	if err != nil {
		a.logRemoteMiss("RemoteSyncAdapter.ReadNote", adapter.NoteJSONKey(id), err)
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	if remote.ID == "" {
		remote.ID = id
	}

	markdown := a.fetchMarkdown(ctx, adapter.NoteMarkdownKey(id))
	if err := a.cache.CacheNote(ctx, remote, markdown); err != nil {
		return nil, err
	}
	return &remote, nil
}

// ReadNoteMarkdown fetches the note first so a cache miss is filled from the
// remote.
func (a *RemoteSyncAdapter) ReadNoteMarkdown(ctx context.Context, id string) (string, error) {
	if _, err := a.ReadNote(ctx, id); err != nil {
		return "", err
	}
	return a.cache.ReadNoteMarkdown(ctx, id)
}

func (a *RemoteSyncAdapter) ReadTemplate(ctx context.Context, id string) (*models.TemplateDocument, error) {
	template, err := a.cache.ReadTemplate(ctx, id)
	if err != nil || template != nil {
		return template, err
	}
	if pending, err := a.pendingLocally(ctx, models.TemplateOutboxKey(id)); pending || err != nil {
		return nil, err
	}

	var remote models.TemplateDocument
	found, err := a.getJSON(ctx, adapter.TemplateJSONKey(id), &remote)
	if err != nil {
		a.logRemoteMiss("RemoteSyncAdapter.ReadTemplate", adapter.TemplateJSONKey(id), err)
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	if remote.ID == "" {
		remote.ID = id
	}

	markdown := a.fetchMarkdown(ctx, adapter.TemplateMarkdownKey(id))
	if err := a.cache.CacheTemplate(ctx, remote, markdown); err != nil {
		return nil, err
	}
	return &remote, nil
}

func (a *RemoteSyncAdapter) ReadTemplateMarkdown(ctx context.Context, id string) (string, error) {
	if _, err := a.ReadTemplate(ctx, id); err != nil {
		return "", err
	}
	return a.cache.ReadTemplateMarkdown(ctx, id)
}

func (a *RemoteSyncAdapter) ReadAsset(ctx context.Context, id string) (*models.Asset, error) {
	asset, err := a.cache.ReadAsset(ctx, id)
	if err != nil || asset != nil {
		return asset, err
	}
	if pending, err := a.pendingLocally(ctx, models.AssetOutboxKey(id)); pending || err != nil {
		return nil, err
	}

	obj, found, err := a.getObject(ctx, adapter.AssetKey(id))
	if err != nil {
		a.logRemoteMiss("RemoteSyncAdapter.ReadAsset", adapter.AssetKey(id), err)
		return nil, nil
	}
	if !found {
		return nil, nil
	}

	fetched := models.Asset{
		ID:        id,
		MimeType:  obj.ContentType,
		Size:      int64(len(obj.Body)),
		CreatedAt: a.now().UnixMilli(),
		Data:      obj.Body,
	}
	if err := a.cache.CacheAsset(ctx, fetched); err != nil {
		return nil, err
	}
	return &fetched, nil
}

// ListAssets merges the cached assets with the ones only the remote holds.
// The remote listing is best effort.
func (a *RemoteSyncAdapter) ListAssets(ctx context.Context) ([]models.AssetMeta, error) {
	metas, err := a.cache.ListAssets(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(metas))
	for _, meta := range metas {
		known[meta.ID] = struct{}{}
	}

	queued, err := a.outbox.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox: %w", err)
	}
	for _, item := range queued {
		if item.Kind == models.OutboxKindAsset {
			known[item.EntityID] = struct{}{}
		}
	}

	remote, err := a.listRemote(ctx, adapter.AssetsPrefix)
	if err != nil {
		a.logRemoteMiss("RemoteSyncAdapter.ListAssets", adapter.AssetsPrefix, err)
		return metas, nil
	}

	for _, obj := range remote {
		id, ok := adapter.AssetIDFromKey(obj.Key)
		if !ok || storage.ValidateID(id) != nil {
			continue
		}
		// cached, or deleted locally and not flushed yet
		if _, skip := known[id]; skip {
			continue
		}
		metas = append(metas, models.AssetMeta{
			ID:        id,
			MimeType:  "application/octet-stream",
			Size:      obj.Size,
			CreatedAt: obj.LastModified.UnixMilli(),
		})
	}

	slices.SortFunc(metas, func(x, y models.AssetMeta) int {
		return cmp.Or(cmp.Compare(x.CreatedAt, y.CreatedAt), cmp.Compare(x.ID, y.ID))
	})
	return metas, nil
}

func (a *RemoteSyncAdapter) ReadUIState(ctx context.Context) (json.RawMessage, error) {
	state, err := a.cache.ReadUIState(ctx)
	if err != nil || len(state) > 0 {
		return state, err
	}
	if pending, err := a.pendingLocally(ctx, models.OutboxKeyUIState); pending || err != nil {
		return state, err
	}

	obj, found, err := a.getObject(ctx, adapter.UIStateKey)
	if err != nil {
		a.logRemoteMiss("RemoteSyncAdapter.ReadUIState", adapter.UIStateKey, err)
		return nil, nil
	}
	if !found || !json.Valid(obj.Body) {
		return nil, nil
	}
	if err := a.cache.WriteUIState(ctx, obj.Body); err != nil {
		return nil, err
	}
	return obj.Body, nil
}

func (a *RemoteSyncAdapter) ReadSearchIndex(ctx context.Context) (string, error) {
	index, err := a.cache.ReadSearchIndex(ctx)
	if err != nil || index != "" {
		return index, err
	}
	if pending, err := a.pendingLocally(ctx, models.OutboxKeySearchIndex); pending || err != nil {
		return "", err
	}

	obj, found, err := a.getObject(ctx, adapter.SearchIndexKey)
	if err != nil {
		a.logRemoteMiss("RemoteSyncAdapter.ReadSearchIndex", adapter.SearchIndexKey, err)
		return "", nil
	}
	if !found {
		return "", nil
	}
	if err := a.cache.WriteSearchIndex(ctx, string(obj.Body)); err != nil {
		return "", err
	}
	return string(obj.Body), nil
}

// pendingLocally reports whether key has a change queued in the outbox. The
// cache is authoritative for such keys even when it holds nothing.
func (a *RemoteSyncAdapter) pendingLocally(ctx context.Context, key string) (bool, error) {
	item, err := a.outbox.Get(ctx, key)
	if err != nil {
		a.logger.Err(err).Str("func", "RemoteSyncAdapter.pendingLocally").Str("key", key).Msg("failed to read outbox item")
		return false, fmt.Errorf("failed to read outbox item %s: %w", key, err)
	}
	return item != nil, nil
}

// fetchMarkdown is best effort: the JSON document is what matters.
func (a *RemoteSyncAdapter) fetchMarkdown(ctx context.Context, key string) string {
	obj, _, err := a.getObject(ctx, key)
	if err != nil {
		a.logRemoteMiss("RemoteSyncAdapter.fetchMarkdown", key, err)
		return ""
	}
	return string(obj.Body)
}

// listRemote collects every page under prefix.
func (a *RemoteSyncAdapter) listRemote(ctx context.Context, prefix string) ([]adapter.ObjectInfo, error) {
	var (
		objects []adapter.ObjectInfo
		token   string
	)
	for {
		var page adapter.ListPage
		err := a.callRemote(ctx, func(ctx context.Context) error {
			var err error
			page, err = a.remote.List(ctx, prefix, token)
			return err
		})
		if err != nil {
			return nil, err
		}

		objects = append(objects, page.Objects...)
		if page.NextToken == "" || page.NextToken == token {
			return objects, nil
		}
		token = page.NextToken
	}
}

func (a *RemoteSyncAdapter) logRemoteMiss(funcName, key string, err error) {
	a.logger.Warn().
		Err(err).
		Str("func", funcName).
		Str("key", key).
		Str("category", string(adapter.CategoryOf(err))).
		Msg("remote read failed, treating as absent")
}
