// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package storage

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/notevault/models"
)

// Adapter is the uniform operation set of a vault backend.
//
// Every mutating operation is an idempotent upsert: applying the same call
// twice leaves the backend in the same state as applying it once.
// Reads of absent entities return nil (or an empty value) and no error.
type Adapter interface {
	// Init prepares the backend for use. Backends that run background work
	// keep it alive until ctx is done.
	Init(ctx context.Context) error

	ReadVault(ctx context.Context) (*models.Vault, error)
	// WriteVault replaces the stored vault as a whole.
	WriteVault(ctx context.Context, vault models.Vault) error

	// ListNotes returns the note projections held by the vault index,
	// soft-deleted notes included.
	ListNotes(ctx context.Context) ([]models.NoteIndexEntry, error)
	ListTemplates(ctx context.Context) ([]models.TemplateIndexEntry, error)

	ReadNote(ctx context.Context, id string) (*models.NoteDocument, error)
	// ReadNoteMarkdown returns the display markdown stored with the note,
	// or "" when the note is unknown.
	ReadNoteMarkdown(ctx context.Context, id string) (string, error)
	// WriteNote stores the document and its derived markdown and keeps the
	// vault index entry in step with it.
	WriteNote(ctx context.Context, id string, doc models.NoteDocument, markdown string) error
	// DeleteNoteSoft sets deletedAt. The note stays indexed.
	DeleteNoteSoft(ctx context.Context, id string) error
	// RestoreNote clears deletedAt and drops the folder reference when the
	// folder no longer exists.
	RestoreNote(ctx context.Context, id string) error
	// DeleteNotePermanent removes the note and its index entry.
	DeleteNotePermanent(ctx context.Context, id string) error

	ReadTemplate(ctx context.Context, id string) (*models.TemplateDocument, error)
	ReadTemplateMarkdown(ctx context.Context, id string) (string, error)
	WriteTemplate(ctx context.Context, id string, doc models.TemplateDocument, markdown string) error
	DeleteTemplate(ctx context.Context, id string) error

	WriteAsset(ctx context.Context, asset models.Asset) error
	ReadAsset(ctx context.Context, id string) (*models.Asset, error)
	ListAssets(ctx context.Context) ([]models.AssetMeta, error)
	DeleteAsset(ctx context.Context, id string) error

	WriteUIState(ctx context.Context, state json.RawMessage) error
	// ReadUIState returns nil when no state was written yet.
	ReadUIState(ctx context.Context) (json.RawMessage, error)

	// WriteSearchIndex stores the search index as an opaque string.
	WriteSearchIndex(ctx context.Context, index string) error
	// ReadSearchIndex returns "" when no index was written yet.
	ReadSearchIndex(ctx context.Context) (string, error)
}

// StatusReporter is implemented by backends that synchronize with a remote
// store and can report their synchronization status.
type StatusReporter interface {
	SyncStatus(ctx context.Context) (models.SyncStatus, error)
}
