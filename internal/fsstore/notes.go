package fsstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/models"
)

const (
	jsonExt     = ".json"
	markdownExt = ".md"
)

func (s *DirectoryStore) ReadNote(ctx context.Context, id string) (*models.NoteDocument, error) {
	if err := storage.ValidateID(id); err != nil {
		return nil, err
	}
	note, _, err := s.findNote(id)
	if err != nil {
		s.logger.Err(err).Str("func", "DirectoryStore.ReadNote").Str("note_id", id).Msg("failed to read note")
		return nil, fmt.Errorf("failed to read note %s: %w", id, err)
	}
	return note, nil
}

func (s *DirectoryStore) ReadNoteMarkdown(ctx context.Context, id string) (string, error) {
	if err := storage.ValidateID(id); err != nil {
		return "", err
	}
	for _, dir := range []string{notesDir, trashDir} {
		data, err := readFile(s.fs, notePath(dir, id, markdownExt))
		if err != nil {
			return "", err
		}
		if data != nil {
			return string(data), nil
		}
	}
	return "", nil
}

// WriteNote stores the note under notes/, or under trash/ when it carries a
// deletion mark, and drops any copy from the other folder.
func (s *DirectoryStore) WriteNote(ctx context.Context, id string, doc models.NoteDocument, markdown string) error {
	id, err := storage.ResolveID(id, doc.ID)
	if err != nil {
		return err
	}
	doc.ID = id

	return s.mutate(ctx, "DirectoryStore.WriteNote", func(m *manifest, _ bool) (bool, error) {
		if err := s.placeNote(doc, markdown); err != nil {
			return false, err
		}
		m.Vault.NotesIndex[id] = doc.IndexEntry()
		m.Vault.Touch(doc.UpdatedAt)
		return true, nil
	})
}

func (s *DirectoryStore) DeleteNoteSoft(ctx context.Context, id string) error {
	return s.updateNote(ctx, "DirectoryStore.DeleteNoteSoft", id, func(note *models.NoteDocument, _ models.Vault, now int64) bool {
		if note.IsDeleted() {
			return false
		}
		note.DeletedAt = &now
		note.UpdatedAt = max(note.UpdatedAt, now)
		return true
	})
}

func (s *DirectoryStore) RestoreNote(ctx context.Context, id string) error {
	return s.updateNote(ctx, "DirectoryStore.RestoreNote", id, func(note *models.NoteDocument, vault models.Vault, now int64) bool {
		changed := false
		if note.IsDeleted() {
			note.DeletedAt = nil
			changed = true
		}
		if note.FolderID != nil && !vault.HasFolder(*note.FolderID) {
			note.FolderID = nil
			changed = true
		}
		if changed {
			note.UpdatedAt = max(note.UpdatedAt, now)
		}
		return changed
	})
}

// updateNote loads the note from whichever folder holds it, applies change
// and moves the files when the deletion mark flipped.
func (s *DirectoryStore) updateNote(
	ctx context.Context,
	funcName, id string,
	change func(note *models.NoteDocument, vault models.Vault, now int64) bool,
) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}
	return s.mutate(ctx, funcName, func(m *manifest, _ bool) (bool, error) {
		note, dir, err := s.findNote(id)
		if err != nil {
			return false, err
		}
		if note == nil {
			return false, fmt.Errorf("%w: %s", storage.ErrNoteNotFound, id)
		}

		if !change(note, m.Vault, s.nowMillis()) {
			return false, errUnchanged
		}

		markdown, err := readFile(s.fs, notePath(dir, id, markdownExt))
		if err != nil {
			return false, err
		}
		if err := s.placeNote(*note, string(markdown)); err != nil {
			return false, err
		}

		m.Vault.NotesIndex[id] = note.IndexEntry()
		m.Vault.Touch(note.UpdatedAt)
		return true, nil
	})
}

func (s *DirectoryStore) DeleteNotePermanent(ctx context.Context, id string) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}
	return s.mutate(ctx, "DirectoryStore.DeleteNotePermanent", func(m *manifest, _ bool) (bool, error) {
		existed := false
		for _, dir := range []string{notesDir, trashDir} {
			removed, err := removeDocument(s.fs, dir, id)
			if err != nil {
				return false, err
			}
			existed = existed || removed
		}

		if _, indexed := m.Vault.NotesIndex[id]; !indexed && !existed {
			return false, errUnchanged
		}
		delete(m.Vault.NotesIndex, id)
		return true, nil
	})
}

func (s *DirectoryStore) ReadTemplate(ctx context.Context, id string) (*models.TemplateDocument, error) {
	if err := storage.ValidateID(id); err != nil {
		return nil, err
	}
	template, err := readDocument[models.TemplateDocument](s.fs, notePath(templatesDir, id, jsonExt))
	if err != nil {
		s.logger.Err(err).Str("func", "DirectoryStore.ReadTemplate").Str("template_id", id).Msg("failed to read template")
		return nil, fmt.Errorf("failed to read template %s: %w", id, err)
	}
	return template, nil
}

func (s *DirectoryStore) ReadTemplateMarkdown(ctx context.Context, id string) (string, error) {
	if err := storage.ValidateID(id); err != nil {
		return "", err
	}
	data, err := readFile(s.fs, notePath(templatesDir, id, markdownExt))
	return string(data), err
}

func (s *DirectoryStore) WriteTemplate(ctx context.Context, id string, doc models.TemplateDocument, markdown string) error {
	id, err := storage.ResolveID(id, doc.ID)
	if err != nil {
		return err
	}
	doc.ID = id

	return s.mutate(ctx, "DirectoryStore.WriteTemplate", func(m *manifest, _ bool) (bool, error) {
		if err := writeDocument(s.fs, templatesDir, id, doc, markdown); err != nil {
			return false, err
		}
		m.Vault.TemplatesIndex[id] = doc.IndexEntry()
		m.Vault.Touch(doc.UpdatedAt)
		return true, nil
	})
}

func (s *DirectoryStore) DeleteTemplate(ctx context.Context, id string) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}
	return s.mutate(ctx, "DirectoryStore.DeleteTemplate", func(m *manifest, _ bool) (bool, error) {
		existed, err := removeDocument(s.fs, templatesDir, id)
		if err != nil {
			return false, err
		}
		if _, indexed := m.Vault.TemplatesIndex[id]; !indexed && !existed {
			return false, errUnchanged
		}
		delete(m.Vault.TemplatesIndex, id)
		return true, nil
	})
}

// findNote returns the note and the folder it was found in.
func (s *DirectoryStore) findNote(id string) (*models.NoteDocument, string, error) {
	for _, dir := range []string{notesDir, trashDir} {
		note, err := readDocument[models.NoteDocument](s.fs, notePath(dir, id, jsonExt))
		if err != nil {
			return nil, "", err
		}
		if note != nil {
			return note, dir, nil
		}
	}
	return nil, "", nil
}

// placeNote writes the note into the folder matching its deletion mark.
func (s *DirectoryStore) placeNote(note models.NoteDocument, markdown string) error {
	dir, other := notesDir, trashDir
	if note.IsDeleted() {
		dir, other = trashDir, notesDir
	}

	if err := writeDocument(s.fs, dir, note.ID, note, markdown); err != nil {
		return err
	}
	_, err := removeDocument(s.fs, other, note.ID)
	return err
}

func readDocument[T any](afs afero.Fs, filename string) (*T, error) {
	data, err := readFile(afs, filename)
	if err != nil || data == nil {
		return nil, err
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodingDocument, filename, err)
	}
	return &doc, nil
}

// writeDocument writes {id}.json before {id}.md so a crash in between leaves
// the markdown stale rather than orphaned.
func writeDocument(afs afero.Fs, dir, id string, doc any, markdown string) error {
	if err := writeJSON(afs, notePath(dir, id, jsonExt), doc); err != nil {
		return err
	}
	return writeFileAtomic(afs, notePath(dir, id, markdownExt), []byte(markdown))
}

// removeDocument reports whether either file existed.
func removeDocument(afs afero.Fs, dir, id string) (bool, error) {
	removedJSON, err := removeFile(afs, notePath(dir, id, jsonExt))
	if err != nil {
		return false, err
	}
	removedMarkdown, err := removeFile(afs, notePath(dir, id, markdownExt))
	if err != nil {
		return false, err
	}
	return removedJSON || removedMarkdown, nil
}
