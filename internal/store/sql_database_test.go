package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &DB{DB: sqlDB, logger: logger.Nop()}, mock
}

func TestWithTx_Commit(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM outbox").WithArgs("vault").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, deleteOutboxItem, "vault")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	fnErr := errors.New("fn failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.WithTx(context.Background(), func(context.Context, DBTX) error { return fnErr })

	assert.ErrorIs(t, err, fnErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = db.WithTx(context.Background(), func(context.Context, DBTX) error { panic("boom") })
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(assert.AnError)

	called := false
	err := db.WithTx(context.Background(), func(context.Context, DBTX) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginningTransaction)
	assert.False(t, called)
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(assert.AnError)

	err := db.WithTx(context.Background(), func(context.Context, DBTX) error { return nil })

	assert.ErrorIs(t, err, ErrCommitingTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheStore_WriteNote_RollsBackOnStatementError(t *testing.T) {
	db, mock := newMockDB(t)
	cache := NewCacheStore(db, "Test Vault", logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT data FROM vault").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(`{"id":"v1","updatedAt":1}`))
	mock.ExpectExec("INSERT INTO notes").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := cache.WriteNote(context.Background(), "n1", models.NoteDocument{Title: "x"}, "x")

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutbox_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	outbox := NewOutboxRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT key, kind").WillReturnError(assert.AnError)

	items, err := outbox.List(context.Background())

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.Nil(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewLocalStorages_CreatesDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "dir", "vault.db")

	storages, err := NewLocalStorages(context.Background(), dsn, "Vault", logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	assert.FileExists(t, dsn)
}

func TestIsMemoryDSN(t *testing.T) {
	assert.True(t, isMemoryDSN(""))
	assert.True(t, isMemoryDSN(":memory:"))
	assert.True(t, isMemoryDSN("file:test?mode=memory&cache=shared"))
	assert.False(t, isMemoryDSN("notevault.db"))
	assert.False(t, isMemoryDSN("file:/tmp/notevault.db?_busy_timeout=500"))
}
