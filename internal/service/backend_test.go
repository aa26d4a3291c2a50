package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/fsstore"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/models"
)

func backendConfig(t *testing.T, backend string) *config.ClientConfig {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Storage = config.ClientStorage{
		Backend: backend,
		DSN:     filepath.Join(dir, "cache.db"),
		DirRoot: filepath.Join(dir, "vault"),
	}
	return &cfg
}

func TestNewBackend_Local(t *testing.T) {
	ctx := context.Background()
	backend, err := NewBackend(ctx, backendConfig(t, config.BackendLocal), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	assert.IsType(t, &store.CacheStore{}, backend.Adapter)
	assert.Zero(t, backend.Workers.Len())

	require.NoError(t, backend.Adapter.Init(ctx))
	vault, err := backend.Adapter.ReadVault(ctx)
	require.NoError(t, err)
	require.NotNil(t, vault)
	assert.Equal(t, "Test Vault", vault.Name)
}

func TestNewBackend_Directory(t *testing.T) {
	ctx := context.Background()
	cfg := backendConfig(t, config.BackendDirectory)
	backend, err := NewBackend(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	assert.IsType(t, &fsstore.DirectoryStore{}, backend.Adapter)
	require.NoError(t, backend.Adapter.Init(ctx))
	require.NoError(t, backend.Adapter.WriteNote(ctx, "n1", models.NoteDocument{Title: "on disk"}, "# on disk"))
	assert.FileExists(t, filepath.Join(cfg.Storage.DirRoot, "notes", "n1.json"))
	assert.FileExists(t, filepath.Join(cfg.Storage.DirRoot, "notes", "n1.md"))

	require.NoError(t, backend.Adapter.WriteSearchIndex(ctx, "idx"))
	index, err := backend.local.Cache.ReadSearchIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, "idx", index, "the search index lives in the database")
}

func TestNewBackend_RemoteHTTP(t *testing.T) {
	cfg := backendConfig(t, config.BackendRemote)
	cfg.Remote = config.ClientRemote{
		Kind:           config.RemoteKindHTTP,
		Endpoint:       "127.0.0.1:1",
		RequestTimeout: time.Second,
	}

	backend, err := NewBackend(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	assert.IsType(t, &RemoteSyncAdapter{}, backend.Adapter)
	assert.Equal(t, 1, backend.Workers.Len())
}

func TestNewBackend_Errors(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewBackend(context.Background(), backendConfig(t, "floppy"), logger.Nop())
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})

	t.Run("unknown remote kind", func(t *testing.T) {
		cfg := backendConfig(t, config.BackendRemote)
		cfg.Remote.Kind = "ftp"
		_, err := NewBackend(context.Background(), cfg, logger.Nop())
		assert.ErrorIs(t, err, config.ErrInvalidRemoteConfigs)
	})
}
