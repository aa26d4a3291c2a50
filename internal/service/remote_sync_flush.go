// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/models"
)

const (
	contentTypeJSON     = "application/json"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
)

// Flush runs one pass over the outbox. Items are applied in (kind priority,
// queue time) order; the pass stops at the first remote failure, which is
// recorded on the failing item and in the sync status. A call while another
// pass runs returns immediately.
//
// Only local storage failures are returned; they leave the status in the
// error state.
func (a *RemoteSyncAdapter) Flush(ctx context.Context) error {
	if !a.flushSem.TryAcquire(1) {
		a.logger.Debug().Str("func", "RemoteSyncAdapter.Flush").Msg("flush already running, skipping")
		return nil
	}
	defer a.flushSem.Release(1)

	items, err := a.outbox.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list outbox: %w", err)
	}
	sortForFlush(items)

	if len(items) > 0 {
		a.updateStatus(ctx, func(s *models.SyncStatus) {
			s.State = models.SyncStateSyncing
			s.PendingCount = len(items)
		})
	}

	for _, item := range items {
		if err := a.apply(ctx, item); err != nil {
			a.failItem(ctx, item, err)
			return nil
		}
		if err := a.completeItem(ctx, item); err != nil {
			a.abortPass(ctx, err)
			return err
		}
	}

	pending, err := a.outbox.Count(ctx)
	if err != nil {
		err = fmt.Errorf("failed to count outbox: %w", err)
		a.abortPass(ctx, err)
		return err
	}

	successAt := a.now()
	a.updateStatus(ctx, func(s *models.SyncStatus) {
		s.State = models.SyncStateIdle
		s.PendingCount = pending
		s.LastError = nil
		s.LastSuccessAt = &successAt
	})

	a.logger.Debug().
		Str("func", "RemoteSyncAdapter.Flush").
		Int("applied", len(items)).
		Int("pending", pending).
		Msg("flush pass finished")

	// writes queued during the pass lost their debounced trigger to it
	if pending > 0 {
		a.scheduleFlush()
	}
	return nil
}

// sortForFlush orders items by kind priority, then by queue time.
func sortForFlush(items []models.OutboxItem) {
	slices.SortStableFunc(items, func(x, y models.OutboxItem) int {
		return cmp.Or(
			cmp.Compare(x.Kind.Priority(), y.Kind.Priority()),
			x.QueuedAt.Compare(y.QueuedAt),
		)
	})
}

// completeItem drops the applied item unless it was re-queued meanwhile; a
// newer write under the same key must be flushed again.
func (a *RemoteSyncAdapter) completeItem(ctx context.Context, item models.OutboxItem) error {
	current, err := a.outbox.Get(ctx, item.Key)
	if err != nil {
		return fmt.Errorf("failed to read outbox item %s: %w", item.Key, err)
	}
	if current == nil || current.Kind != item.Kind || !current.QueuedAt.Equal(item.QueuedAt) {
		return nil
	}

	if err := a.outbox.Delete(ctx, item.Key); err != nil {
		return fmt.Errorf("failed to delete outbox item %s: %w", item.Key, err)
	}

	a.updateStatus(ctx, func(s *models.SyncStatus) {
		s.PendingCount = max(s.PendingCount-1, 0)
	})
	return nil
}

func (a *RemoteSyncAdapter) failItem(ctx context.Context, item models.OutboxItem, err error) {
	msg := adapter.Describe(err)
	a.logger.Warn().
		Err(err).
		Str("func", "RemoteSyncAdapter.Flush").
		Str("key", item.Key).
		Str("category", string(adapter.CategoryOf(err))).
		Msg("flush pass stopped")

	if markErr := a.outbox.MarkAttempt(ctx, item.Key, msg); markErr != nil {
		a.logger.Err(markErr).Str("func", "RemoteSyncAdapter.Flush").Str("key", item.Key).Msg("failed to record attempt")
	}

	a.recordFailure(ctx, err)
	a.refreshPending(ctx)
}

// abortPass moves the status out of syncing after a local storage failure.
// The remote side is fine, so the queue stays as it is for the next pass.
func (a *RemoteSyncAdapter) abortPass(ctx context.Context, err error) {
	a.logger.Err(err).Str("func", "RemoteSyncAdapter.Flush").Msg("flush pass aborted")

	msg := err.Error()
	a.updateStatus(ctx, func(s *models.SyncStatus) {
		s.State = models.SyncStateError
		s.LastError = &msg
	})
}

// apply translates an outbox item into idempotent remote calls. The current
// local state is pushed, not the state at queue time.
func (a *RemoteSyncAdapter) apply(ctx context.Context, item models.OutboxItem) error {
	switch item.Kind {
	case models.OutboxKindVault:
		return a.pushVault(ctx)
	case models.OutboxKindNote:
		return a.pushNote(ctx, item.EntityID)
	case models.OutboxKindTemplate:
		return a.pushTemplate(ctx, item.EntityID)
	case models.OutboxKindAsset:
		return a.pushAsset(ctx, item.EntityID)
	case models.OutboxKindDeleteNotePermanent:
		return a.deletePair(ctx, adapter.NoteJSONKey(item.EntityID), adapter.NoteMarkdownKey(item.EntityID))
	case models.OutboxKindDeleteTemplate:
		return a.deletePair(ctx, adapter.TemplateJSONKey(item.EntityID), adapter.TemplateMarkdownKey(item.EntityID))
	case models.OutboxKindUIState:
		return a.pushUIState(ctx)
	case models.OutboxKindSearchIndex:
		return a.pushSearchIndex(ctx)
	default:
		return fmt.Errorf("unsupported outbox kind %q", item.Kind)
	}
}

func (a *RemoteSyncAdapter) pushVault(ctx context.Context) error {
	vault, err := a.cache.ReadVault(ctx)
	if err != nil || vault == nil {
		return err
	}
	body, err := json.Marshal(vault)
	if err != nil {
		return err
	}
	return a.putObject(ctx, adapter.VaultKey, body, contentTypeJSON)
}

func (a *RemoteSyncAdapter) pushNote(ctx context.Context, id string) error {
	note, err := a.cache.ReadNote(ctx, id)
	if err != nil {
		return err
	}
	if note == nil {
		return a.deletePair(ctx, adapter.NoteJSONKey(id), adapter.NoteMarkdownKey(id))
	}

	markdown, err := a.cache.ReadNoteMarkdown(ctx, id)
	if err != nil {
		return err
	}
	return a.putPair(ctx, adapter.NoteJSONKey(id), adapter.NoteMarkdownKey(id), note, markdown)
}

func (a *RemoteSyncAdapter) pushTemplate(ctx context.Context, id string) error {
	template, err := a.cache.ReadTemplate(ctx, id)
	if err != nil {
		return err
	}
	if template == nil {
		return a.deletePair(ctx, adapter.TemplateJSONKey(id), adapter.TemplateMarkdownKey(id))
	}

	markdown, err := a.cache.ReadTemplateMarkdown(ctx, id)
	if err != nil {
		return err
	}
	return a.putPair(ctx, adapter.TemplateJSONKey(id), adapter.TemplateMarkdownKey(id), template, markdown)
}

func (a *RemoteSyncAdapter) pushAsset(ctx context.Context, id string) error {
	asset, err := a.cache.ReadAsset(ctx, id)
	if err != nil {
		return err
	}
	if asset == nil {
		return a.deleteObject(ctx, adapter.AssetKey(id))
	}
	return a.putObject(ctx, adapter.AssetKey(id), asset.Data, asset.MimeType)
}

// pushUIState removes the remote copy of a cleared state.
func (a *RemoteSyncAdapter) pushUIState(ctx context.Context) error {
	state, err := a.cache.ReadUIState(ctx)
	if err != nil {
		return err
	}
	if len(state) == 0 {
		if err := a.deleteObject(ctx, adapter.UIStateKey); err != nil && !adapter.IsNotFound(err) {
			return err
		}
		return nil
	}
	return a.putObject(ctx, adapter.UIStateKey, state, contentTypeJSON)
}

func (a *RemoteSyncAdapter) pushSearchIndex(ctx context.Context) error {
	index, err := a.cache.ReadSearchIndex(ctx)
	if err != nil {
		return err
	}
	return a.putObject(ctx, adapter.SearchIndexKey, []byte(index), contentTypeJSON)
}

// putPair writes the JSON document before its markdown rendition.
func (a *RemoteSyncAdapter) putPair(ctx context.Context, jsonKey, markdownKey string, doc any, markdown string) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := a.putObject(ctx, jsonKey, body, contentTypeJSON); err != nil {
		return err
	}
	return a.putObject(ctx, markdownKey, []byte(markdown), contentTypeMarkdown)
}

// deletePair removes both files. A missing object counts as deleted.
func (a *RemoteSyncAdapter) deletePair(ctx context.Context, jsonKey, markdownKey string) error {
	if err := a.deleteObject(ctx, jsonKey); err != nil && !adapter.IsNotFound(err) {
		return err
	}
	if err := a.deleteObject(ctx, markdownKey); err != nil && !adapter.IsNotFound(err) {
		return err
	}
	return nil
}
