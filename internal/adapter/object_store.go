package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
)

// NewObjectStore builds the [ObjectStore] selected by cfg.Kind.
func NewObjectStore(ctx context.Context, cfg config.ClientRemote, log *logger.Logger) (ObjectStore, error) {
	switch cfg.Kind {
	case config.RemoteKindS3:
		return NewS3ObjectStore(ctx, cfg, log)
	case config.RemoteKindHTTP:
		return NewHTTPObjectStore(cfg, log)
	default:
		return nil, fmt.Errorf("%w: unknown remote kind %q", config.ErrInvalidRemoteConfigs, cfg.Kind)
	}
}
