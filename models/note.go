// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// NoteDocument is the full content entity of a note.
//
// Content is the opaque rich-text payload produced by the editor; PlainText
// and Links are derived from it by the editor as well. DeletedAt marks a soft
// deleted note; nil means the note is live.
type NoteDocument struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	FolderID  *string  `json:"folderId,omitempty"`
	TagIDs    []string `json:"tagIds"`
	Favorite  bool     `json:"favorite"`
	DeletedAt *int64   `json:"deletedAt"`

	CustomFields map[string]json.RawMessage `json:"customFields,omitempty"`
	Content      json.RawMessage            `json:"content,omitempty"`
	PlainText    string                     `json:"plainText"`
	Links        []string                   `json:"links"`
}

// NoteIndexEntry is the projection of a note kept inside the Vault so notes
// can be listed without loading their content.
type NoteIndexEntry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	FolderID  *string  `json:"folderId,omitempty"`
	TagIDs    []string `json:"tagIds"`
	Favorite  bool     `json:"favorite"`
	DeletedAt *int64   `json:"deletedAt"`
}

// IndexEntry builds the vault projection of the note.
func (n NoteDocument) IndexEntry() NoteIndexEntry {
	return NoteIndexEntry{
		ID:        n.ID,
		Title:     n.Title,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		FolderID:  n.FolderID,
		TagIDs:    n.TagIDs,
		Favorite:  n.Favorite,
		DeletedAt: n.DeletedAt,
	}
}

// IsDeleted reports whether the note sits in the trash.
func (n NoteDocument) IsDeleted() bool {
	return n.DeletedAt != nil
}

// TemplateDocument is the full content entity of a note template.
type TemplateDocument struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	FolderID  *string  `json:"folderId,omitempty"`
	TagIDs    []string `json:"tagIds"`

	CustomFields map[string]json.RawMessage `json:"customFields,omitempty"`
	Content      json.RawMessage            `json:"content,omitempty"`
	PlainText    string                     `json:"plainText"`
}

// TemplateIndexEntry is the projection of a template kept inside the Vault.
type TemplateIndexEntry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	FolderID  *string  `json:"folderId,omitempty"`
	TagIDs    []string `json:"tagIds"`
}

// IndexEntry builds the vault projection of the template.
func (t TemplateDocument) IndexEntry() TemplateIndexEntry {
	return TemplateIndexEntry{
		ID:        t.ID,
		Title:     t.Title,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		FolderID:  t.FolderID,
		TagIDs:    t.TagIDs,
	}
}
