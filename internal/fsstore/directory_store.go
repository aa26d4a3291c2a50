// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fsstore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/internal/utils"
	"github.com/MKhiriev/notevault/models"
)

const (
	manifestFile = "vault.json"
	notesDir     = "notes"
	trashDir     = "trash"
	templatesDir = "templates"
	assetsDir    = "assets"
)

// KVStore keeps the UI state and the search index outside the manifest.
// *store.CacheStore satisfies it.
type KVStore interface {
	WriteUIState(ctx context.Context, state json.RawMessage) error
	ReadUIState(ctx context.Context) (json.RawMessage, error)
	WriteSearchIndex(ctx context.Context, index string) error
	ReadSearchIndex(ctx context.Context) (string, error)
}

// manifest is the content of vault.json.
type manifest struct {
	Vault       models.Vault    `json:"vault"`
	UIState     json.RawMessage `json:"uiState,omitempty"`
	SearchIndex *string         `json:"searchIndex,omitempty"`
}

// DirectoryStore implements [storage.Adapter] over a directory tree.
type DirectoryStore struct {
	fs        afero.Fs
	kv        KVStore
	ids       storage.IDGenerator
	vaultName string
	logger    *logger.Logger
	now       func() time.Time

	// mu serializes every read-modify-write of the tree. A writer waits for
	// the previous one to settle whether it failed or not.
	mu sync.Mutex
}

var _ storage.Adapter = (*DirectoryStore)(nil)

// New returns a store over afs. kv may be nil, in which case the UI state and
// the search index are kept in the manifest.
func New(afs afero.Fs, vaultName string, kv KVStore, log *logger.Logger) *DirectoryStore {
	return &DirectoryStore{
		fs:        afs,
		kv:        kv,
		ids:       utils.NewUUIDGenerator(),
		vaultName: vaultName,
		logger:    log.WithComponent("directory_store"),
		now:       time.Now,
	}
}

// NewOnDisk roots a store at dir on the real filesystem.
func NewOnDisk(dir string, vaultName string, kv KVStore, log *logger.Logger) (*DirectoryStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create vault directory %s: %w", dir, err)
	}
	return New(afero.NewBasePathFs(osFs, dir), vaultName, kv, log), nil
}

// Init creates the directory layout and a default vault when the folder holds
// none.
func (s *DirectoryStore) Init(ctx context.Context) error {
	for _, dir := range []string{notesDir, trashDir, templatesDir, assetsDir} {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			s.logger.Err(err).Str("func", "DirectoryStore.Init").Str("dir", dir).Msg("failed to create directory")
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return s.mutate(ctx, "DirectoryStore.Init", func(m *manifest, created bool) (bool, error) {
		if !created {
			return false, errUnchanged
		}
		s.logger.Info().Str("func", "DirectoryStore.Init").Msg("created default vault")
		return false, nil
	})
}

func (s *DirectoryStore) ReadVault(ctx context.Context) (*models.Vault, error) {
	m, err := s.readManifest()
	if err != nil || m == nil {
		return nil, err
	}
	return &m.Vault, nil
}

// WriteVault replaces the vault, keeping the other manifest fields.
func (s *DirectoryStore) WriteVault(ctx context.Context, vault models.Vault) error {
	if vault.ID == "" {
		return storage.ErrEmptyID
	}
	vault.EnsureMaps()

	return s.mutate(ctx, "DirectoryStore.WriteVault", func(m *manifest, _ bool) (bool, error) {
		m.Vault = vault
		return false, nil
	})
}

func (s *DirectoryStore) ListNotes(ctx context.Context) ([]models.NoteIndexEntry, error) {
	m, err := s.readManifest()
	if err != nil || m == nil {
		return []models.NoteIndexEntry{}, err
	}

	entries := make([]models.NoteIndexEntry, 0, len(m.Vault.NotesIndex))
	for _, entry := range m.Vault.NotesIndex {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b models.NoteIndexEntry) int { return cmp.Compare(a.ID, b.ID) })
	return entries, nil
}

func (s *DirectoryStore) ListTemplates(ctx context.Context) ([]models.TemplateIndexEntry, error) {
	m, err := s.readManifest()
	if err != nil || m == nil {
		return []models.TemplateIndexEntry{}, err
	}

	entries := make([]models.TemplateIndexEntry, 0, len(m.Vault.TemplatesIndex))
	for _, entry := range m.Vault.TemplatesIndex {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b models.TemplateIndexEntry) int { return cmp.Compare(a.ID, b.ID) })
	return entries, nil
}

func (s *DirectoryStore) WriteUIState(ctx context.Context, state json.RawMessage) error {
	if s.kv != nil {
		return s.kv.WriteUIState(ctx, state)
	}
	return s.mutate(ctx, "DirectoryStore.WriteUIState", func(m *manifest, _ bool) (bool, error) {
		m.UIState = state
		return false, nil
	})
}

// ReadUIState reads from the key-value store when one is configured. A value
// still sitting in the manifest is moved there on first read.
func (s *DirectoryStore) ReadUIState(ctx context.Context) (json.RawMessage, error) {
	if s.kv == nil {
		m, err := s.readManifest()
		if err != nil || m == nil || len(m.UIState) == 0 {
			return nil, err
		}
		return m.UIState, nil
	}

	state, err := s.kv.ReadUIState(ctx)
	if err != nil || len(state) > 0 {
		return state, err
	}

	var migrated json.RawMessage
	err = s.mutate(ctx, "DirectoryStore.ReadUIState", func(m *manifest, _ bool) (bool, error) {
		if len(m.UIState) == 0 {
			return false, errUnchanged
		}
		if err := s.kv.WriteUIState(ctx, m.UIState); err != nil {
			return false, err
		}
		migrated, m.UIState = m.UIState, nil
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return migrated, nil
}

func (s *DirectoryStore) WriteSearchIndex(ctx context.Context, index string) error {
	if s.kv != nil {
		return s.kv.WriteSearchIndex(ctx, index)
	}
	return s.mutate(ctx, "DirectoryStore.WriteSearchIndex", func(m *manifest, _ bool) (bool, error) {
		m.SearchIndex = &index
		return false, nil
	})
}

// ReadSearchIndex mirrors [DirectoryStore.ReadUIState].
func (s *DirectoryStore) ReadSearchIndex(ctx context.Context) (string, error) {
	if s.kv == nil {
		m, err := s.readManifest()
		if err != nil || m == nil || m.SearchIndex == nil {
			return "", err
		}
		return *m.SearchIndex, nil
	}

	index, err := s.kv.ReadSearchIndex(ctx)
	if err != nil || index != "" {
		return index, err
	}

	var migrated string
	err = s.mutate(ctx, "DirectoryStore.ReadSearchIndex", func(m *manifest, _ bool) (bool, error) {
		if m.SearchIndex == nil {
			return false, errUnchanged
		}
		if err := s.kv.WriteSearchIndex(ctx, *m.SearchIndex); err != nil {
			return false, err
		}
		migrated, m.SearchIndex = *m.SearchIndex, nil
		return false, nil
	})
	if err != nil {
		return "", err
	}
	return migrated, nil
}

func (s *DirectoryStore) nowMillis() int64 {
	return s.now().UnixMilli()
}

func (s *DirectoryStore) readManifest() (*manifest, error) {
	data, err := readFile(s.fs, manifestFile)
	if err != nil || data == nil {
		return nil, err
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		s.logger.Err(err).Str("func", "DirectoryStore.readManifest").Msg("failed to decode manifest")
		return nil, fmt.Errorf("%w: %w", ErrDecodingManifest, err)
	}
	m.Vault.EnsureMaps()
	return &m, nil
}

// errUnchanged lets a mutation skip writing the manifest back.
var errUnchanged = errors.New("unchanged")

// mutate runs fn under the writer lock on the current manifest, or on a new
// default one (created=true) when none exists. When fn reports touched, the
// vault's updatedAt is moved to at least now. The manifest is written back
// unless fn fails or returns errUnchanged.
func (s *DirectoryStore) mutate(
	ctx context.Context,
	funcName string,
	fn func(m *manifest, created bool) (touched bool, err error),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.readManifest()
	if err != nil {
		return err
	}
	created := m == nil
	if created {
		m = &manifest{Vault: models.NewDefaultVault(s.ids.Generate(), s.vaultName, s.nowMillis())}
	}

	touched, err := fn(m, created)
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", funcName).Msg("failed to update vault directory")
		return err
	}
	if touched {
		m.Vault.Touch(s.nowMillis())
	}

	if err := writeJSON(s.fs, manifestFile, m); err != nil {
		s.logger.Err(err).Str("func", funcName).Msg("failed to write manifest")
		return err
	}
	return nil
}

func notePath(dir, id, ext string) string {
	return filepath.Join(dir, id+ext)
}
