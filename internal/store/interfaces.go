package store

import (
	"context"

	"github.com/MKhiriev/notevault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// OutboxQueue is the durable keyed queue of pending remote operations.
// At most one item exists per key.
type OutboxQueue interface {
	// Put upserts the item by key. Kind, entity id and queue time are
	// refreshed; retry metadata is kept unless item.ResetRetry is set.
	Put(ctx context.Context, item models.OutboxItem) error
	// List returns all pending items ordered by queue time.
	List(ctx context.Context) ([]models.OutboxItem, error)
	// Get returns the item queued under key or nil.
	Get(ctx context.Context, key string) (*models.OutboxItem, error)
	// Delete removes the item. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
	// MarkAttempt records a failed remote application of the item.
	MarkAttempt(ctx context.Context, key string, errMsg string) error
	Count(ctx context.Context) (int, error)
}

// SyncMetaStore persists the synchronization status.
type SyncMetaStore interface {
	// Load returns the stored status or [models.DefaultSyncStatus].
	Load(ctx context.Context) (models.SyncStatus, error)
	Save(ctx context.Context, status models.SyncStatus) error
}
