// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/internal/utils"
	"github.com/MKhiriev/notevault/models"
)

const (
	kvKeyUIState     = "ui-state"
	kvKeySearchIndex = "search-index"
)

// CacheStore implements [storage.Adapter] on top of the local SQLite
// database. It is the "local" backend and the ground truth the directory and
// remote backends cache into.
//
// Every operation that changes a note, template or asset updates the vault
// row in the same transaction: the index projection is rewritten and the
// vault's updatedAt is moved to at least max(entity timestamp, now).
type CacheStore struct {
	*DB
	logger    *logger.Logger
	ids       storage.IDGenerator
	vaultName string
	now       func() time.Time
}

var _ storage.Adapter = (*CacheStore)(nil)

// NewCacheStore returns a cache store over db. vaultName names the default
// vault created when a mutation or Init finds none.
func NewCacheStore(db *DB, vaultName string, log *logger.Logger) *CacheStore {
	return &CacheStore{
		DB:        db,
		logger:    log.WithComponent("cache_store"),
		ids:       utils.NewUUIDGenerator(),
		vaultName: vaultName,
		now:       time.Now,
	}
}

// Init creates the default vault when none is stored.
func (s *CacheStore) Init(ctx context.Context) error {
	return s.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		_, created, err := s.loadOrCreateVault(ctx, tx)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		s.logger.Info().Str("func", "CacheStore.Init").Msg("created default vault")
		return nil
	})
}

// NewDefaultVault builds an empty vault with a fresh id and the configured
// name. It is not stored.
func (s *CacheStore) NewDefaultVault() models.Vault {
	return models.NewDefaultVault(s.ids.Generate(), s.vaultName, s.nowMillis())
}

func (s *CacheStore) ReadVault(ctx context.Context) (*models.Vault, error) {
	vault, err := getVault(ctx, s.DB)
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ReadVault").Msg("failed to read vault")
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}
	return vault, nil
}

func (s *CacheStore) WriteVault(ctx context.Context, vault models.Vault) error {
	return s.CacheVault(ctx, vault)
}

// CacheVault replaces the stored vault as is.
func (s *CacheStore) CacheVault(ctx context.Context, vault models.Vault) error {
	if vault.ID == "" {
		return storage.ErrEmptyID
	}
	vault.EnsureMaps()

	if err := putVault(ctx, s.DB, vault); err != nil {
		s.logger.Err(err).Str("func", "CacheStore.CacheVault").Str("vault_id", vault.ID).Msg("failed to store vault")
		return fmt.Errorf("failed to store vault: %w", err)
	}
	return nil
}

func (s *CacheStore) ListNotes(ctx context.Context) ([]models.NoteIndexEntry, error) {
	vault, err := s.ReadVault(ctx)
	if err != nil || vault == nil {
		return []models.NoteIndexEntry{}, err
	}

	entries := make([]models.NoteIndexEntry, 0, len(vault.NotesIndex))
	for _, entry := range vault.NotesIndex {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b models.NoteIndexEntry) int { return cmp.Compare(a.ID, b.ID) })

	return entries, nil
}

func (s *CacheStore) ListTemplates(ctx context.Context) ([]models.TemplateIndexEntry, error) {
	vault, err := s.ReadVault(ctx)
	if err != nil || vault == nil {
		return []models.TemplateIndexEntry{}, err
	}

	entries := make([]models.TemplateIndexEntry, 0, len(vault.TemplatesIndex))
	for _, entry := range vault.TemplatesIndex {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b models.TemplateIndexEntry) int { return cmp.Compare(a.ID, b.ID) })

	return entries, nil
}

func (s *CacheStore) WriteUIState(ctx context.Context, state json.RawMessage) error {
	if err := putKV(ctx, s.DB, kvKeyUIState, string(state)); err != nil {
		s.logger.Err(err).Str("func", "CacheStore.WriteUIState").Msg("failed to store ui state")
		return fmt.Errorf("failed to store ui state: %w", err)
	}
	return nil
}

func (s *CacheStore) ReadUIState(ctx context.Context) (json.RawMessage, error) {
	value, ok, err := getKV(ctx, s.DB, kvKeyUIState)
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ReadUIState").Msg("failed to read ui state")
		return nil, fmt.Errorf("failed to read ui state: %w", err)
	}
	if !ok || value == "" {
		return nil, nil
	}
	return json.RawMessage(value), nil
}

func (s *CacheStore) WriteSearchIndex(ctx context.Context, index string) error {
	if err := putKV(ctx, s.DB, kvKeySearchIndex, index); err != nil {
		s.logger.Err(err).Str("func", "CacheStore.WriteSearchIndex").Msg("failed to store search index")
		return fmt.Errorf("failed to store search index: %w", err)
	}
	return nil
}

func (s *CacheStore) ReadSearchIndex(ctx context.Context) (string, error) {
	value, _, err := getKV(ctx, s.DB, kvKeySearchIndex)
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ReadSearchIndex").Msg("failed to read search index")
		return "", fmt.Errorf("failed to read search index: %w", err)
	}
	return value, nil
}

func (s *CacheStore) nowMillis() int64 {
	return s.now().UnixMilli()
}

// loadOrCreateVault returns the stored vault, or a new default one that the
// caller is expected to store. created reports the latter.
func (s *CacheStore) loadOrCreateVault(ctx context.Context, q DBTX) (models.Vault, bool, error) {
	vault, err := getVault(ctx, q)
	if err != nil {
		return models.Vault{}, false, err
	}
	if vault != nil {
		return *vault, false, nil
	}

	created := s.NewDefaultVault()
	if err := putVault(ctx, q, created); err != nil {
		return models.Vault{}, false, err
	}
	return created, true, nil
}

// touchVault stores vault after moving its updatedAt to at least
// max(ts, now).
func (s *CacheStore) touchVault(ctx context.Context, q DBTX, vault models.Vault, ts int64) error {
	vault.Touch(max(ts, s.nowMillis()))
	return putVault(ctx, q, vault)
}

func getVault(ctx context.Context, q DBTX) (*models.Vault, error) {
	vault, err := getJSON[models.Vault](ctx, q, selectVault)
	if err != nil || vault == nil {
		return nil, err
	}
	vault.EnsureMaps()
	return vault, nil
}

func putVault(ctx context.Context, q DBTX, vault models.Vault) error {
	data, err := json.Marshal(vault)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEntity, err)
	}
	if _, err := q.ExecContext(ctx, upsertVault, vault.ID, string(data), vault.UpdatedAt); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func getKV(ctx context.Context, q DBTX, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, selectKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, true, nil
}

func putKV(ctx context.Context, q DBTX, key, value string) error {
	if _, err := q.ExecContext(ctx, upsertKV, key, value); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// getJSON scans a single JSON text column and decodes it into T. A missing
// row yields nil.
func getJSON[T any](ctx context.Context, q DBTX, query string, args ...any) (*T, error) {
	var data string
	err := q.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingEntity, err)
	}
	return &v, nil
}

func getString(ctx context.Context, q DBTX, query string, args ...any) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, nil
}
