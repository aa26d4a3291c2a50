// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

// outboxRepository keeps the outbox in the "outbox" table, one row per key.
// Timestamps are stored as Unix nanoseconds so items queued within the same
// millisecond keep their order.
type outboxRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewOutboxRepository returns the SQLite backed [OutboxQueue].
func NewOutboxRepository(db *DB, log *logger.Logger) OutboxQueue {
	return &outboxRepository{
		DB:     db,
		logger: log.WithComponent("outbox"),
		now:    time.Now,
	}
}

func (o *outboxRepository) Put(ctx context.Context, item models.OutboxItem) error {
	if item.Key == "" || !item.Kind.Valid() {
		return fmt.Errorf("%w: key=%q kind=%q", ErrInvalidOutboxItem, item.Key, item.Kind)
	}
	if item.QueuedAt.IsZero() {
		item.QueuedAt = o.now()
	}

	query := upsertOutboxItem
	if item.ResetRetry {
		query = upsertOutboxItemResetRetry
	}

	_, err := o.ExecContext(ctx, query, item.Key, string(item.Kind), nullString(item.EntityID), item.QueuedAt.UnixNano())
	if err != nil {
		o.logger.Err(err).
			Str("func", "outboxRepository.Put").
			Str("key", item.Key).
			Str("kind", string(item.Kind)).
			Msg("failed to upsert outbox item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (o *outboxRepository) List(ctx context.Context) ([]models.OutboxItem, error) {
	return o.selectItems(ctx, nil)
}

func (o *outboxRepository) Get(ctx context.Context, key string) (*models.OutboxItem, error) {
	items, err := o.selectItems(ctx, []string{key})
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (o *outboxRepository) selectItems(ctx context.Context, keys []string) ([]models.OutboxItem, error) {
	query, args, err := buildSelectOutboxQuery(keys)
	if err != nil {
		o.logger.Err(err).Str("func", "outboxRepository.List").Msg("failed to build query")
		return nil, err
	}

	rows, err := o.QueryContext(ctx, query, args...)
	if err != nil {
		o.logger.Err(err).Str("func", "outboxRepository.List").Msg("failed to query outbox")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.OutboxItem, 0)
	for rows.Next() {
		var (
			item          models.OutboxItem
			kind          string
			entityID      sql.NullString
			queuedAt      int64
			retryCount    sql.NullInt64
			lastAttemptAt sql.NullInt64
			lastError     sql.NullString
		)

		if err := rows.Scan(&item.Key, &kind, &entityID, &queuedAt, &retryCount, &lastAttemptAt, &lastError); err != nil {
			o.logger.Err(err).Str("func", "outboxRepository.List").Msg("failed to scan outbox row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		item.Kind = models.OutboxKind(kind)
		item.EntityID = entityID.String
		item.QueuedAt = time.Unix(0, queuedAt)
		item.RetryCount = int(retryCount.Int64)
		if lastAttemptAt.Valid {
			at := time.Unix(0, lastAttemptAt.Int64)
			item.LastAttemptAt = &at
		}
		if lastError.Valid {
			msg := lastError.String
			item.LastError = &msg
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		o.logger.Err(err).Str("func", "outboxRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (o *outboxRepository) Delete(ctx context.Context, key string) error {
	if _, err := o.ExecContext(ctx, deleteOutboxItem, key); err != nil {
		o.logger.Err(err).Str("func", "outboxRepository.Delete").Str("key", key).Msg("failed to delete outbox item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (o *outboxRepository) MarkAttempt(ctx context.Context, key string, errMsg string) error {
	res, err := o.ExecContext(ctx, markOutboxAttempt, o.now().UnixNano(), errMsg, key)
	if err != nil {
		o.logger.Err(err).Str("func", "outboxRepository.MarkAttempt").Str("key", key).Msg("failed to mark outbox attempt")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrOutboxItemNotFound, key)
	}

	return nil
}

func (o *outboxRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := o.QueryRowContext(ctx, countOutboxItems).Scan(&count); err != nil {
		o.logger.Err(err).Str("func", "outboxRepository.Count").Msg("failed to count outbox items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
