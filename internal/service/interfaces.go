// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service contains the synchronization engine of the "remote"
// backend and the wiring that picks a backend from configuration.
package service

import (
	"context"

	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/models"
)

// LocalCache is the local store the remote backend serves reads from and
// queues writes through. *store.CacheStore satisfies it.
type LocalCache interface {
	storage.Adapter

	// CacheVault, CacheNote, CacheTemplate and CacheAsset store data fetched
	// from the remote without touching the vault index.
	CacheVault(ctx context.Context, vault models.Vault) error
	CacheNote(ctx context.Context, doc models.NoteDocument, markdown string) error
	CacheTemplate(ctx context.Context, doc models.TemplateDocument, markdown string) error
	CacheAsset(ctx context.Context, asset models.Asset) error
}

// ReconnectNotifier is told when the remote store became reachable again.
type ReconnectNotifier interface {
	NotifyReconnected()
}
