package service

import (
	"context"
	"time"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/logger"
)

// ConnectivityMonitor probes the remote store and notifies when it becomes
// reachable after a failed probe.
type ConnectivityMonitor struct {
	remote   adapter.ObjectStore
	notifier ReconnectNotifier
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger

	online bool
}

func NewConnectivityMonitor(
	remote adapter.ObjectStore,
	notifier ReconnectNotifier,
	interval, timeout time.Duration,
	log *logger.Logger,
) *ConnectivityMonitor {
	return &ConnectivityMonitor{
		remote:   remote,
		notifier: notifier,
		interval: interval,
		timeout:  timeout,
		logger:   log.WithComponent("connectivity"),
		online:   true,
	}
}

// Run probes every interval until ctx is done.
func (m *ConnectivityMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *ConnectivityMonitor) probe(ctx context.Context) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	err := m.remote.Ping(ctx)
	switch {
	case err != nil && m.online:
		m.online = false
		m.logger.Warn().Err(err).
			Str("func", "ConnectivityMonitor.probe").
			Str("category", string(adapter.CategoryOf(err))).
			Msg("remote store unreachable")
	case err == nil && !m.online:
		m.online = true
		m.logger.Info().Str("func", "ConnectivityMonitor.probe").Msg("remote store reachable again")
		m.notifier.NotifyReconnected()
	}
}
