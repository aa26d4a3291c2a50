// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fsstore implements the "directory" backend: a vault kept as plain
// files inside a user-chosen folder.
//
// Layout relative to the root:
//
//	vault.json             manifest {vault, uiState?, searchIndex?}
//	notes/{id}.json, .md   live notes
//	trash/{id}.json, .md   soft-deleted notes
//	templates/{id}.json, .md
//	assets/{id}{ext}       extension derived from the mime type
//
// Every file is replaced atomically (temp file + rename). Mutations are
// serialized so concurrent writers never lose manifest updates.
package fsstore
