package service

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/models"
)

// fakeRemote is an in-memory adapter.ObjectStore.
type fakeRemote struct {
	mu       sync.Mutex
	objects  map[string]adapter.Object
	err      error
	calls    []string
	pageSize int

	// beforePut runs outside the lock before a put is stored.
	beforePut func(key string)
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{objects: map[string]adapter.Object{}, pageSize: 100}
}

func networkError(key string) error {
	return &adapter.RemoteError{Op: "put", Key: key, Category: adapter.CategoryNetwork, Err: errors.New("dial tcp: connection refused")}
}

func (f *fakeRemote) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeRemote) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeRemote) Get(_ context.Context, key string) (adapter.Object, error) {
	if err := f.record("get " + key); err != nil {
		return adapter.Object{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[key]
	if !ok {
		return adapter.Object{}, &adapter.RemoteError{Op: "get", Key: key, Category: adapter.CategoryNotFound, Err: adapter.ErrObjectNotFound}
	}
	return obj, nil
}

func (f *fakeRemote) Put(_ context.Context, key string, body []byte, contentType string) error {
	if err := f.record("put " + key); err != nil {
		return err
	}
	if f.beforePut != nil {
		f.beforePut(key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = adapter.Object{Body: slices.Clone(body), ContentType: contentType}
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, key string) error {
	if err := f.record("delete " + key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeRemote) List(_ context.Context, prefix, token string) (adapter.ListPage, error) {
	if err := f.record("list " + prefix); err != nil {
		return adapter.ListPage{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) && key > token {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	page := adapter.ListPage{}
	for i, key := range keys {
		if i == f.pageSize {
			page.NextToken = keys[i-1]
			break
		}
		page.Objects = append(page.Objects, adapter.ObjectInfo{
			Key:          key,
			Size:         int64(len(f.objects[key].Body)),
			LastModified: time.UnixMilli(5_000),
		})
	}
	return page, nil
}

func (f *fakeRemote) Ping(context.Context) error {
	return f.record("ping")
}

func (f *fakeRemote) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

func (f *fakeRemote) body(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.objects[key].Body)
}

func (f *fakeRemote) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

func testConfig() config.ClientConfig {
	return config.ClientConfig{
		App:    config.ClientApp{VaultName: "Test Vault"},
		Remote: config.ClientRemote{RequestTimeout: time.Second},
		Workers: config.ClientWorkers{
			FlushInterval: time.Hour,
			DebounceDelay: time.Hour,
			ProbeInterval: time.Hour,
		},
	}
}

func newLocal(t *testing.T) *store.LocalStorages {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "cache.db")
	local, err := store.NewLocalStorages(context.Background(), dsn, "Test Vault", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })
	return local
}

func newTestAdapter(t *testing.T, remote adapter.ObjectStore, cfg config.ClientConfig) (*RemoteSyncAdapter, *store.LocalStorages) {
	t.Helper()

	local := newLocal(t)
	return NewRemoteSyncAdapter(local.Cache, local.Outbox, local.SyncMeta, remote, cfg, logger.Nop()), local
}

// initAdapter runs Init with a context cancelled at the end of the test.
func initAdapter(t *testing.T, a *RemoteSyncAdapter) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, a.Init(ctx))
}

func outboxKeys(t *testing.T, local *store.LocalStorages) []string {
	t.Helper()

	items, err := local.Outbox.List(context.Background())
	require.NoError(t, err)
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	slices.Sort(keys)
	return keys
}

func status(t *testing.T, a *RemoteSyncAdapter) models.SyncStatus {
	t.Helper()

	s, err := a.SyncStatus(context.Background())
	require.NoError(t, err)
	return s
}
