package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/mock"
)

// fakeClock is a settable clock shared by the repositories under test.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestStorages opens a migrated SQLite file in a temp dir with a fake
// clock wired into every repository.
func newTestStorages(t *testing.T) (*LocalStorages, *fakeClock) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "data", "notevault.db")
	storages, err := NewLocalStorages(context.Background(), dsn, "Test Vault", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	clock := &fakeClock{t: time.UnixMilli(1_700_000_000_000)}
	storages.Cache.now = clock.Now
	ids := mock.NewMockIDGenerator(gomock.NewController(t))
	ids.EXPECT().Generate().Return("vault-1").AnyTimes()
	storages.Cache.ids = ids
	storages.Outbox.(*outboxRepository).now = clock.Now

	return storages, clock
}
