// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	selectVault = `SELECT data FROM vault WHERE slot = 1;`

	upsertVault = `
		INSERT INTO vault (slot, id, data, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			id         = excluded.id,
			data       = excluded.data,
			updated_at = excluded.updated_at;`

	selectNote         = `SELECT data FROM notes WHERE id = ?;`
	selectNoteMarkdown = `SELECT markdown FROM notes WHERE id = ?;`

	upsertNote = `
		INSERT INTO notes (id, data, markdown, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			data       = excluded.data,
			markdown   = excluded.markdown,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at;`

	// markdown is derived from content, which a soft delete does not touch
	updateNoteRow = `
		UPDATE notes SET
			data       = ?,
			updated_at = ?,
			deleted_at = ?
		WHERE id = ?;`

	deleteNote = `DELETE FROM notes WHERE id = ?;`

	selectTemplate         = `SELECT data FROM templates WHERE id = ?;`
	selectTemplateMarkdown = `SELECT markdown FROM templates WHERE id = ?;`

	upsertTemplate = `
		INSERT INTO templates (id, data, markdown, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			data       = excluded.data,
			markdown   = excluded.markdown,
			updated_at = excluded.updated_at;`

	deleteTemplate = `DELETE FROM templates WHERE id = ?;`

	selectAsset = `SELECT id, mime_type, size, created_at, data FROM assets WHERE id = ?;`

	upsertAsset = `
		INSERT INTO assets (id, mime_type, size, created_at, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			mime_type  = excluded.mime_type,
			size       = excluded.size,
			created_at = excluded.created_at,
			data       = excluded.data;`

	deleteAsset = `DELETE FROM assets WHERE id = ?;`

	selectKV = `SELECT value FROM kv WHERE key = ?;`

	upsertKV = `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	// retry metadata survives a re-enqueue of the same key
	upsertOutboxItem = `
		INSERT INTO outbox (key, kind, entity_id, queued_at, retry_count, last_attempt_at, last_error)
		VALUES (?, ?, ?, ?, 0, NULL, NULL)
		ON CONFLICT (key) DO UPDATE SET
			kind      = excluded.kind,
			entity_id = excluded.entity_id,
			queued_at = excluded.queued_at;`

	upsertOutboxItemResetRetry = `
		INSERT INTO outbox (key, kind, entity_id, queued_at, retry_count, last_attempt_at, last_error)
		VALUES (?, ?, ?, ?, 0, NULL, NULL)
		ON CONFLICT (key) DO UPDATE SET
			kind            = excluded.kind,
			entity_id       = excluded.entity_id,
			queued_at       = excluded.queued_at,
			retry_count     = 0,
			last_attempt_at = NULL,
			last_error      = NULL;`

	markOutboxAttempt = `
		UPDATE outbox SET
			retry_count     = COALESCE(retry_count, 0) + 1,
			last_attempt_at = ?,
			last_error      = ?
		WHERE key = ?;`

	deleteOutboxItem = `DELETE FROM outbox WHERE key = ?;`
	countOutboxItems = `SELECT COUNT(*) FROM outbox;`

	selectSyncMeta = `SELECT value FROM sync_meta WHERE key = ?;`

	upsertSyncMeta = `
		INSERT INTO sync_meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`
)

var outboxColumns = []string{
	"key",
	"kind",
	"entity_id",
	"queued_at",
	"retry_count",
	"last_attempt_at",
	"last_error",
}

var assetMetaColumns = []string{
	"id",
	"mime_type",
	"size",
	"created_at",
}

// buildSelectOutboxQuery selects queued items in queue order. A non-empty keys
// slice restricts the result to those keys.
func buildSelectOutboxQuery(keys []string) (string, []any, error) {
	builder := sq.Select(outboxColumns...).
		From("outbox").
		OrderBy("queued_at ASC", "key ASC").
		PlaceholderFormat(sq.Question)

	if len(keys) > 0 {
		builder = builder.Where(sq.Eq{"key": keys})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectAssetMetaQuery selects asset metadata without the blobs, oldest
// first. A non-empty ids slice restricts the result to those assets.
func buildSelectAssetMetaQuery(ids []string) (string, []any, error) {
	builder := sq.Select(assetMetaColumns...).
		From("assets").
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(sq.Question)

	if len(ids) > 0 {
		builder = builder.Where(sq.Eq{"id": ids})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
