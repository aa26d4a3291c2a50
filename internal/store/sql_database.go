package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/migrations"
)

// DB wraps the SQLite connection shared by the cache, outbox and sync meta
// repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// DBTX is the subset of *sql.DB and *sql.Tx the repositories need, so the
// same helpers run inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including on panic.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.logger.Err(err).Str("func", "DB.WithTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			db.logger.Err(commitErr).Str("func", "DB.WithTx").Msg("failed to commit transaction")
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}
	}()

	return fn(ctx, tx)
}
