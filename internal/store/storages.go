package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notevault/internal/logger"
)

// LocalStorages groups the repositories sharing one SQLite database.
type LocalStorages struct {
	DB       *DB
	Cache    *CacheStore
	Outbox   OutboxQueue
	SyncMeta SyncMetaStore
}

// NewLocalStorages initialises the local storage layer:
//  1. opens the SQLite database at dsn, creating its directory if needed;
//  2. runs pending schema migrations via [DB.Migrate];
//  3. wires the cache, outbox and sync meta repositories to it.
func NewLocalStorages(ctx context.Context, dsn, vaultName string, log *logger.Logger) (*LocalStorages, error) {
	log.Info().Str("func", "NewLocalStorages").Msg("creating local storages...")

	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &LocalStorages{
		DB:       db,
		Cache:    NewCacheStore(db, vaultName, log),
		Outbox:   NewOutboxRepository(db, log),
		SyncMeta: NewSyncMetaRepository(db, log),
	}, nil
}

// Close releases the database.
func (s *LocalStorages) Close() error {
	return s.DB.Close()
}
