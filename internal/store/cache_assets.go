package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/models"
)

// WriteAsset stores the asset and bumps the vault's updatedAt. A zero size
// is taken from the data, a zero createdAt from the clock.
func (s *CacheStore) WriteAsset(ctx context.Context, asset models.Asset) error {
	if err := storage.ValidateID(asset.ID); err != nil {
		return err
	}
	asset = s.normalizeAsset(asset)

	err := s.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		vault, _, err := s.loadOrCreateVault(ctx, tx)
		if err != nil {
			return err
		}
		if err := putAsset(ctx, tx, asset); err != nil {
			return err
		}
		return s.touchVault(ctx, tx, vault, asset.CreatedAt)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.WriteAsset").Str("asset_id", asset.ID).Msg("failed to write asset")
		return fmt.Errorf("failed to write asset %s: %w", asset.ID, err)
	}
	return nil
}

// CacheAsset stores the asset without touching the vault.
func (s *CacheStore) CacheAsset(ctx context.Context, asset models.Asset) error {
	if err := storage.ValidateID(asset.ID); err != nil {
		return err
	}
	asset = s.normalizeAsset(asset)

	if err := putAsset(ctx, s.DB, asset); err != nil {
		s.logger.Err(err).Str("func", "CacheStore.CacheAsset").Str("asset_id", asset.ID).Msg("failed to cache asset")
		return fmt.Errorf("failed to cache asset %s: %w", asset.ID, err)
	}
	return nil
}

func (s *CacheStore) ReadAsset(ctx context.Context, id string) (*models.Asset, error) {
	if err := storage.ValidateID(id); err != nil {
		return nil, err
	}
	var asset models.Asset
	err := s.QueryRowContext(ctx, selectAsset, id).Scan(
		&asset.ID,
		&asset.MimeType,
		&asset.Size,
		&asset.CreatedAt,
		&asset.Data,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ReadAsset").Str("asset_id", id).Msg("failed to scan asset row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return &asset, nil
}

func (s *CacheStore) ListAssets(ctx context.Context) ([]models.AssetMeta, error) {
	return s.listAssetMeta(ctx, nil)
}

// AssetMetas returns the metadata of the cached assets among ids.
func (s *CacheStore) AssetMetas(ctx context.Context, ids []string) ([]models.AssetMeta, error) {
	if len(ids) == 0 {
		return []models.AssetMeta{}, nil
	}
	return s.listAssetMeta(ctx, ids)
}

func (s *CacheStore) listAssetMeta(ctx context.Context, ids []string) ([]models.AssetMeta, error) {
	query, args, err := buildSelectAssetMetaQuery(ids)
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ListAssets").Msg("failed to build query")
		return nil, err
	}

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ListAssets").Msg("failed to query assets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	metas := make([]models.AssetMeta, 0)
	for rows.Next() {
		var meta models.AssetMeta
		if err := rows.Scan(&meta.ID, &meta.MimeType, &meta.Size, &meta.CreatedAt); err != nil {
			s.logger.Err(err).Str("func", "CacheStore.ListAssets").Msg("failed to scan asset row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		metas = append(metas, meta)
	}

	if err := rows.Err(); err != nil {
		s.logger.Err(err).Str("func", "CacheStore.ListAssets").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return metas, nil
}

func (s *CacheStore) DeleteAsset(ctx context.Context, id string) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}
	err := s.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, deleteAsset, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if deleted, _ := res.RowsAffected(); deleted == 0 {
			return nil
		}

		vault, err := getVault(ctx, tx)
		if err != nil || vault == nil {
			return err
		}
		return s.touchVault(ctx, tx, *vault, 0)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "CacheStore.DeleteAsset").Str("asset_id", id).Msg("failed to delete asset")
		return fmt.Errorf("failed to delete asset %s: %w", id, err)
	}
	return nil
}

func (s *CacheStore) normalizeAsset(asset models.Asset) models.Asset {
	if asset.Size == 0 {
		asset.Size = int64(len(asset.Data))
	}
	if asset.CreatedAt == 0 {
		asset.CreatedAt = s.nowMillis()
	}
	if asset.Data == nil {
		asset.Data = []byte{}
	}
	return asset
}

func putAsset(ctx context.Context, q DBTX, asset models.Asset) error {
	_, err := q.ExecContext(ctx, upsertAsset, asset.ID, asset.MimeType, asset.Size, asset.CreatedAt, asset.Data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
