package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/storage"
	"github.com/MKhiriev/notevault/internal/workers"
	"github.com/MKhiriev/notevault/models"
)

type App struct {
	adapter   storage.Adapter
	workers   *workers.Workers
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(adapter storage.Adapter, w *workers.Workers, buildInfo models.AppBuildInfo, log *logger.Logger) *App {
	if w == nil {
		w = workers.NewWorkers()
	}
	return &App{
		adapter:   adapter,
		workers:   w,
		buildInfo: buildInfo,
		logger:    log.WithComponent("app"),
	}
}

// Run initializes the backend and keeps its workers running until ctx is
// done. The backend's background flushing shares the same lifetime.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().
		Str("version", a.buildInfo.BuildVersion()).
		Str("commit", a.buildInfo.BuildCommit()).
		Msg("starting notevault")

	if err := a.adapter.Init(ctx); err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	a.logStatus(ctx, "storage initialized")

	a.workers.Run(ctx)
	<-ctx.Done()

	a.logStatus(context.WithoutCancel(ctx), "shutting down")
	return nil
}

func (a *App) logStatus(ctx context.Context, msg string) {
	reporter, ok := a.adapter.(storage.StatusReporter)
	if !ok {
		a.logger.Info().Msg(msg)
		return
	}

	status, err := reporter.SyncStatus(ctx)
	if err != nil {
		a.logger.Err(err).Str("func", "App.logStatus").Msg("failed to read sync status")
		return
	}

	event := a.logger.Info().
		Str("state", string(status.State)).
		Int("pending", status.PendingCount)
	if status.LastError != nil {
		event = event.Str("last_error", *status.LastError)
	}
	if status.LastInitResolution != nil {
		event = event.Str("init_resolution", string(*status.LastInitResolution))
	}
	event.Msg(msg)
}
