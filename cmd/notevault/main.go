package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/notevault/internal/client"
	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/service"
	"github.com/MKhiriev/notevault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("notevault").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewFileLogger("notevault", cfg.App.LogFile)
	log.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("remote_kind", cfg.Remote.Kind).
		Dur("flush_interval", cfg.Workers.FlushInterval).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := service.NewBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create storage backend")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Err(err).Msg("close storage backend")
		}
	}()

	app := client.NewApp(backend.Adapter, backend.Workers, buildInfo, log)
	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("notevault run error")
	}
}
