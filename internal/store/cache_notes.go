package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/models"
)

func (s *CacheStore) ReadNote(ctx context.Context, id string) (*models.NoteDocument, error) {
	if err := storage.ValidateID(id); err != nil {
		return nil, err
	}
	note, err := getJSON[models.NoteDocument](ctx, s.DB, selectNote, id)
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ReadNote").Str("note_id", id).Msg("failed to read note")
		return nil, fmt.Errorf("failed to read note %s: %w", id, err)
	}
	return note, nil
}

func (s *CacheStore) ReadNoteMarkdown(ctx context.Context, id string) (string, error) {
	if err := storage.ValidateID(id); err != nil {
		return "", err
	}
	markdown, err := getString(ctx, s.DB, selectNoteMarkdown, id)
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ReadNoteMarkdown").Str("note_id", id).Msg("failed to read note markdown")
		return "", fmt.Errorf("failed to read note markdown %s: %w", id, err)
	}
	return markdown, nil
}

func (s *CacheStore) WriteNote(ctx context.Context, id string, doc models.NoteDocument, markdown string) error {
	id, err := storage.ResolveID(id, doc.ID)
	if err != nil {
		return err
	}
	doc.ID = id

	err = s.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		vault, _, err := s.loadOrCreateVault(ctx, tx)
		if err != nil {
			return err
		}
		if err := putNote(ctx, tx, doc, markdown); err != nil {
			return err
		}

		vault.NotesIndex[id] = doc.IndexEntry()
		return s.touchVault(ctx, tx, vault, doc.UpdatedAt)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.WriteNote").Str("note_id", id).Msg("failed to write note")
		return fmt.Errorf("failed to write note %s: %w", id, err)
	}
	return nil
}

// CacheNote stores the note without touching the vault index.
func (s *CacheStore) CacheNote(ctx context.Context, doc models.NoteDocument, markdown string) error {
	if err := storage.ValidateID(doc.ID); err != nil {
		return err
	}
	if err := putNote(ctx, s.DB, doc, markdown); err != nil {
		s.logger.Err(err).Str("func", "CacheStore.CacheNote").Str("note_id", doc.ID).Msg("failed to cache note")
		return fmt.Errorf("failed to cache note %s: %w", doc.ID, err)
	}
	return nil
}

func (s *CacheStore) DeleteNoteSoft(ctx context.Context, id string) error {
	return s.updateNote(ctx, "CacheStore.DeleteNoteSoft", id, func(note *models.NoteDocument, _ models.Vault, now int64) bool {
		if note.IsDeleted() {
			return false
		}
		note.DeletedAt = &now
		note.UpdatedAt = max(note.UpdatedAt, now)
		return true
	})
}

func (s *CacheStore) RestoreNote(ctx context.Context, id string) error {
	return s.updateNote(ctx, "CacheStore.RestoreNote", id, func(note *models.NoteDocument, vault models.Vault, now int64) bool {
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

// updateNote applies mutate to the stored note inside one transaction. The
// note, its index entry and the vault are written only when mutate reports a
// change.
func (s *CacheStore) updateNote(
	ctx context.Context,
	funcName, id string,
	mutate func(note *models.NoteDocument, vault models.Vault, now int64) bool,
) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}
	err := s.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		note, err := getJSON[models.NoteDocument](ctx, tx, selectNote, id)
		if err != nil {
			return err
		}
		if note == nil {
			return storage.ErrNoteNotFound
		}

		vault, _, err := s.loadOrCreateVault(ctx, tx)
		if err != nil {
			return err
		}
		if !mutate(note, vault, s.nowMillis()) {
			return nil
		}

		if err := updateNoteData(ctx, tx, *note); err != nil {
			return err
		}
		vault.NotesIndex[id] = note.IndexEntry()
		return s.touchVault(ctx, tx, vault, note.UpdatedAt)
	})
	if err != nil {
		s.logger.Err(err).Str("func", funcName).Str("note_id", id).Msg("failed to update note")
		return fmt.Errorf("failed to update note %s: %w", id, err)
	}
	return nil
}

func (s *CacheStore) DeleteNotePermanent(ctx context.Context, id string) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}
	err := s.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, deleteNote, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		deleted, _ := res.RowsAffected()

		vault, err := getVault(ctx, tx)
		if err != nil || vault == nil {
			return err
		}
		_, indexed := vault.NotesIndex[id]
		if deleted == 0 && !indexed {
			return nil
		}

		delete(vault.NotesIndex, id)
		return s.touchVault(ctx, tx, *vault, 0)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.DeleteNotePermanent").Str("note_id", id).Msg("failed to delete note")
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return nil
}

func (s *CacheStore) ReadTemplate(ctx context.Context, id string) (*models.TemplateDocument, error) {
	if err := storage.ValidateID(id); err != nil {
		return nil, err
	}
	template, err := getJSON[models.TemplateDocument](ctx, s.DB, selectTemplate, id)
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ReadTemplate").Str("template_id", id).Msg("failed to read template")
		return nil, fmt.Errorf("failed to read template %s: %w", id, err)
	}
	return template, nil
}

func (s *CacheStore) ReadTemplateMarkdown(ctx context.Context, id string) (string, error) {
	if err := storage.ValidateID(id); err != nil {
		return "", err
	}
	markdown, err := getString(ctx, s.DB, selectTemplateMarkdown, id)
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ReadTemplateMarkdown").Str("template_id", id).Msg("failed to read template markdown")
		return "", fmt.Errorf("failed to read template markdown %s: %w", id, err)
	}
	return markdown, nil
}

func (s *CacheStore) WriteTemplate(ctx context.Context, id string, doc models.TemplateDocument, markdown string) error {
	id, err := storage.ResolveID(id, doc.ID)
	if err != nil {
		return err
	}
	doc.ID = id

	err = s.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		vault, _, err := s.loadOrCreateVault(ctx, tx)
		if err != nil {
			return err
		}
		if err := putTemplate(ctx, tx, doc, markdown); err != nil {
			return err
		}

		vault.TemplatesIndex[id] = doc.IndexEntry()
		return s.touchVault(ctx, tx, vault, doc.UpdatedAt)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.WriteTemplate").Str("template_id", id).Msg("failed to write template")
		return fmt.Errorf("failed to write template %s: %w", id, err)
	}
	return nil
}

// CacheTemplate stores the template without touching the vault index.
func (s *CacheStore) CacheTemplate(ctx context.Context, doc models.TemplateDocument, markdown string) error {
	if err := storage.ValidateID(doc.ID); err != nil {
		return err
	}
	if err := putTemplate(ctx, s.DB, doc, markdown); err != nil {
		s.logger.Err(err).Str("func", "CacheStore.CacheTemplate").Str("template_id", doc.ID).Msg("failed to cache template")
		return fmt.Errorf("failed to cache template %s: %w", doc.ID, err)
	}
	return nil
}

func (s *CacheStore) DeleteTemplate(ctx context.Context, id string) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}
	err := s.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, deleteTemplate, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		deleted, _ := res.RowsAffected()

		vault, err := getVault(ctx, tx)
		if err != nil || vault == nil {
			return err
		}
		_, indexed := vault.TemplatesIndex[id]
		if deleted == 0 && !indexed {
			return nil
		}

		delete(vault.TemplatesIndex, id)
		return s.touchVault(ctx, tx, *vault, 0)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.DeleteTemplate").Str("template_id", id).Msg("failed to delete template")
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	return nil
}

func putNote(ctx context.Context, q DBTX, doc models.NoteDocument, markdown string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEntity, err)
	}
	if _, err := q.ExecContext(ctx, upsertNote, doc.ID, string(data), markdown, doc.UpdatedAt, doc.DeletedAt); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func updateNoteData(ctx context.Context, q DBTX, doc models.NoteDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEntity, err)
	}
	if _, err := q.ExecContext(ctx, updateNoteRow, string(data), doc.UpdatedAt, doc.DeletedAt, doc.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func putTemplate(ctx context.Context, q DBTX, doc models.TemplateDocument, markdown string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEntity, err)
	}
	if _, err := q.ExecContext(ctx, upsertTemplate, doc.ID, string(data), markdown, doc.UpdatedAt); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
