// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Vault is the singleton aggregate describing a workspace: its folders, tags,
// lightweight projections of every note and template, and a free-form
// settings bag.
//
// Two copies of a Vault (local cache and remote object) are reconciled by
// comparing UpdatedAt: the newer copy wins as a whole.
type Vault struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`

	Folders        map[string]Folder             `json:"folders"`
	Tags           map[string]Tag                `json:"tags"`
	NotesIndex     map[string]NoteIndexEntry     `json:"notesIndex"`
	TemplatesIndex map[string]TemplateIndexEntry `json:"templatesIndex"`

	// Settings is stored opaquely.
	Settings json.RawMessage `json:"settings,omitempty"`
}

// Folder groups notes and templates. ParentID is nil for top-level folders.
type Folder struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parentId,omitempty"`
	CreatedAt int64   `json:"createdAt"`
}

// Tag is a user label that notes and templates reference by id.
type Tag struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

// NewDefaultVault returns an empty vault created at now (epoch milliseconds).
func NewDefaultVault(id, name string, now int64) Vault {
	v := Vault{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v.EnsureMaps()
	return v
}

// EnsureMaps replaces nil maps with empty ones so callers can write into them
// without checks. Vaults decoded from older JSON may lack some of them.
func (v *Vault) EnsureMaps() {
	if v.Folders == nil {
		v.Folders = make(map[string]Folder)
	}
	if v.Tags == nil {
		v.Tags = make(map[string]Tag)
	}
	if v.NotesIndex == nil {
		v.NotesIndex = make(map[string]NoteIndexEntry)
	}
	if v.TemplatesIndex == nil {
		v.TemplatesIndex = make(map[string]TemplateIndexEntry)
	}
}

// Touch moves UpdatedAt forward to ts. It never moves it backwards.
func (v *Vault) Touch(ts int64) {
	if ts > v.UpdatedAt {
		v.UpdatedAt = ts
	}
}

// HasFolder reports whether a folder with the given id exists.
func (v *Vault) HasFolder(id string) bool {
	_, ok := v.Folders[id]
	return ok
}
