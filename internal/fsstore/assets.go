package fsstore

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/models"
)

const defaultMimeType = "application/octet-stream"

// Preferred extensions for common types. mime.ExtensionsByType depends on the
// host's mime tables and may list several candidates.
var extensionsByType = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
	"text/plain":      ".txt",
	"text/markdown":   ".md",
	"audio/mpeg":      ".mp3",
	"video/mp4":       ".mp4",
	"application/zip": ".zip",
}

var typesByExtension = map[string]string{
	".jpeg": "image/jpeg",
}

func init() {
	for typ, ext := range extensionsByType {
		typesByExtension[ext] = typ
	}
}

func extensionForType(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ""
	}
	if ext, ok := extensionsByType[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func typeForExtension(ext string) string {
	ext = strings.ToLower(ext)
	if typ, ok := typesByExtension[ext]; ok {
		return typ
	}
	if typ := mime.TypeByExtension(ext); typ != "" {
		if mediaType, _, err := mime.ParseMediaType(typ); err == nil {
			return mediaType
		}
	}
	return defaultMimeType
}

// WriteAsset stores the payload as assets/{id}{ext}. The file's modification
// time carries the asset's createdAt.
func (s *DirectoryStore) WriteAsset(ctx context.Context, asset models.Asset) error {
	if err := storage.ValidateID(asset.ID); err != nil {
		return err
	}
	if asset.CreatedAt == 0 {
		asset.CreatedAt = s.nowMillis()
	}

	return s.mutate(ctx, "DirectoryStore.WriteAsset", func(m *manifest, _ bool) (bool, error) {
		name := filepath.Join(assetsDir, asset.ID+extensionForType(asset.MimeType))

		// a new mime type may change the extension
		if old, err := s.findAsset(asset.ID); err != nil {
			return false, err
		} else if old != "" && old != name {
			if _, err := removeFile(s.fs, old); err != nil {
				return false, err
			}
		}

		if err := writeFileAtomic(s.fs, name, asset.Data); err != nil {
			return false, err
		}
		createdAt := time.UnixMilli(asset.CreatedAt)
		if err := s.fs.Chtimes(name, createdAt, createdAt); err != nil {
			return false, fmt.Errorf("failed to set asset time: %w", err)
		}

		m.Vault.Touch(asset.CreatedAt)
		return true, nil
	})
}

func (s *DirectoryStore) ReadAsset(ctx context.Context, id string) (*models.Asset, error) {
	if err := storage.ValidateID(id); err != nil {
		return nil, err
	}
	name, err := s.findAsset(id)
	if err != nil || name == "" {
		return nil, err
	}

	data, err := readFile(s.fs, name)
	if err != nil || data == nil {
		return nil, err
	}
	info, err := s.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	asset := models.Asset{
		ID:        id,
		MimeType:  typeForExtension(filepath.Ext(name)),
		Size:      int64(len(data)),
		CreatedAt: info.ModTime().UnixMilli(),
		Data:      data,
	}
	return &asset, nil
}

func (s *DirectoryStore) ListAssets(ctx context.Context) ([]models.AssetMeta, error) {
	entries, err := afero.ReadDir(s.fs, assetsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.AssetMeta{}, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "DirectoryStore.ListAssets").Msg("failed to list assets")
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	metas := make([]models.AssetMeta, 0, len(entries))
	for _, entry := range entries {
		id, ext, ok := splitAssetName(entry.Name())
		if !ok || entry.IsDir() {
			continue
		}
		metas = append(metas, models.AssetMeta{
			ID:        id,
			MimeType:  typeForExtension(ext),
			Size:      entry.Size(),
			CreatedAt: entry.ModTime().UnixMilli(),
		})
	}
	slices.SortFunc(metas, func(a, b models.AssetMeta) int {
		return cmp.Or(cmp.Compare(a.CreatedAt, b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	return metas, nil
}

func (s *DirectoryStore) DeleteAsset(ctx context.Context, id string) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}
	return s.mutate(ctx, "DirectoryStore.DeleteAsset", func(m *manifest, _ bool) (bool, error) {
		name, err := s.findAsset(id)
		if err != nil {
			return false, err
		}
		if name == "" {
			return false, errUnchanged
		}
		if _, err := removeFile(s.fs, name); err != nil {
			return false, err
		}
		return true, nil
	})
}

// findAsset returns the path of the file holding asset id, or "" when there
// is none.
func (s *DirectoryStore) findAsset(id string) (string, error) {
	entries, err := afero.ReadDir(s.fs, assetsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to list assets: %w", err)
	}

	for _, entry := range entries {
		if entryID, _, ok := splitAssetName(entry.Name()); ok && entryID == id && !entry.IsDir() {
			return filepath.Join(assetsDir, entry.Name()), nil
		}
	}
	return "", nil
}

// splitAssetName splits "{id}{ext}". Temp files of interrupted writes are
// skipped.
func splitAssetName(name string) (id, ext string, ok bool) {
	if strings.HasPrefix(name, tempFilePrefix) {
		return "", "", false
	}
	ext = filepath.Ext(name)
	id = strings.TrimSuffix(name, ext)
	return id, ext, id != ""
}
