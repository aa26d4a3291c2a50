package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/mock"
)

type countingNotifier struct {
	calls atomic.Int32
}

func (n *countingNotifier) NotifyReconnected() {
	n.calls.Add(1)
}

func TestConnectivityMonitor_Probe(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name       string
		pings      []error
		wantOnline bool
		wantNotify int32
	}{
		{name: "stays online", pings: []error{nil, nil}, wantOnline: true},
		{name: "goes offline", pings: []error{down}, wantOnline: false},
		{name: "comes back", pings: []error{down, down, nil}, wantOnline: true, wantNotify: 1},
		{name: "flaps", pings: []error{down, nil, down, nil, nil}, wantOnline: true, wantNotify: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			remote := mock.NewMockObjectStore(ctrl)
			notifier := &countingNotifier{}
			m := NewConnectivityMonitor(remote, notifier, time.Hour, time.Second, logger.Nop())

			for _, result := range tt.pings {
				remote.EXPECT().Ping(gomock.Any()).Return(result)
				m.probe(context.Background())
			}

			assert.Equal(t, tt.wantOnline, m.online)
			assert.Equal(t, tt.wantNotify, notifier.calls.Load())
		})
	}
}

func TestConnectivityMonitor_RunStopsWithContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockObjectStore(ctrl)
	remote.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()
	m := NewConnectivityMonitor(remote, &countingNotifier{}, time.Millisecond, time.Second, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}

// A reconnect seen by the monitor ends up as a flush of the engine.
func TestConnectivityMonitor_TriggersFlush(t *testing.T) {
	remote := newFakeRemote()
	remote.setErr(networkError("vault.json"))
	a, local := newTestAdapter(t, remote, testConfig())
	initAdapter(t, a)

	m := NewConnectivityMonitor(remote, a, time.Hour, time.Second, logger.Nop())
	m.probe(context.Background())
	assert.False(t, m.online)

	remote.setErr(nil)
	m.probe(context.Background())

	assert.Eventually(t, func() bool {
		pending, err := local.Outbox.Count(context.Background())
		return err == nil && pending == 0 && remote.has("vault.json")
	}, 2*time.Second, 10*time.Millisecond)
}
