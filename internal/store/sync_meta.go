package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

const syncMetaStatusKey = "status"

type syncMetaRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncMetaRepository returns the SQLite backed [SyncMetaStore]. The status
// is kept as one JSON document in the "sync_meta" table.
func NewSyncMetaRepository(db *DB, log *logger.Logger) SyncMetaStore {
	return &syncMetaRepository{
		DB:     db,
		logger: log.WithComponent("sync_meta"),
	}
}

func (r *syncMetaRepository) Load(ctx context.Context) (models.SyncStatus, error) {
	status, err := getJSON[models.SyncStatus](ctx, r.DB, selectSyncMeta, syncMetaStatusKey)
	if err != nil {
		r.logger.Err(err).Str("func", "syncMetaRepository.Load").Msg("failed to load sync status")
		return models.DefaultSyncStatus(), fmt.Errorf("failed to load sync status: %w", err)
	}
	if status == nil {
		return models.DefaultSyncStatus(), nil
	}
	if status.State == "" {
		status.State = models.SyncStateIdle
	}
	return *status, nil
}

func (r *syncMetaRepository) Save(ctx context.Context, status models.SyncStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEntity, err)
	}

	if _, err := r.ExecContext(ctx, upsertSyncMeta, syncMetaStatusKey, string(data)); err != nil {
		r.logger.Err(err).Str("func", "syncMetaRepository.Save").Msg("failed to save sync status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
