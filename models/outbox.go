// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OutboxKind names the remote operation a pending outbox item stands for.
type OutboxKind string

const (
	OutboxKindVault               OutboxKind = "vault"
	OutboxKindNote                OutboxKind = "note"
	OutboxKindTemplate            OutboxKind = "template"
	OutboxKindAsset               OutboxKind = "asset"
	OutboxKindDeleteNotePermanent OutboxKind = "deleteNotePermanent"
	OutboxKindDeleteTemplate      OutboxKind = "deleteTemplate"
	OutboxKindUIState             OutboxKind = "uiState"
	OutboxKindSearchIndex         OutboxKind = "searchIndex"
)

// flushPriority orders kinds inside a flush pass: content before the index
// that summarizes it, the vault last.
var flushPriority = map[OutboxKind]int{
	OutboxKindNote:                0,
	OutboxKindTemplate:            1,
	OutboxKindAsset:               2,
	OutboxKindDeleteNotePermanent: 3,
	OutboxKindDeleteTemplate:      4,
	OutboxKindUIState:             5,
	OutboxKindSearchIndex:         6,
	OutboxKindVault:               7,
}

// Priority returns the flush rank of the kind. Unknown kinds sort right
// before the vault.
func (k OutboxKind) Priority() int {
	if p, ok := flushPriority[k]; ok {
		return p
	}
	return flushPriority[OutboxKindVault] - 1
}

// Valid reports whether k is one of the known kinds.
func (k OutboxKind) Valid() bool {
	_, ok := flushPriority[k]
	return ok
}

// Outbox keys. There is at most one pending item per key.
const (
	OutboxKeyVault       = "vault"
	OutboxKeyUIState     = "ui-state"
	OutboxKeySearchIndex = "search-index"
)

// NoteOutboxKey is shared by note writes and permanent deletes so a delete
// supersedes a pending write of the same note.
func NoteOutboxKey(id string) string { return "note:" + id }

// TemplateOutboxKey is the template counterpart of NoteOutboxKey.
func TemplateOutboxKey(id string) string { return "template:" + id }

// AssetOutboxKey covers both writes and deletes of an asset.
func AssetOutboxKey(id string) string { return "asset:" + id }

// OutboxItem is one pending remote write or delete.
type OutboxItem struct {
	Key      string     `json:"key"`
	Kind     OutboxKind `json:"kind"`
	EntityID string     `json:"id,omitempty"`
	QueuedAt time.Time  `json:"queuedAt"`

	RetryCount    int        `json:"retryCount"`
	LastAttemptAt *time.Time `json:"lastAttemptAt"`
	LastError     *string    `json:"lastError"`

	// ResetRetry asks Put to clear retry bookkeeping of an existing item.
	ResetRetry bool `json:"-"`
}
