// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called and waits for ctx.
type mockWorker struct {
	runCount atomic.Int32
	started  chan struct{}
}

func newMockWorker() *mockWorker {
	return &mockWorker{started: make(chan struct{}, 1)}
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount.Add(1)
	m.started <- struct{}{}
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := newMockWorker(), newMockWorker(), newMockWorker()
	ws := NewWorkers(w1, w2, w3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	// every worker runs at the same time
	for i, w := range []*mockWorker{w1, w2, w3} {
		select {
		case <-w.started:
		case <-time.After(time.Second):
			t.Fatalf("worker[%d] did not start", i)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	for i, w := range []*mockWorker{w1, w2, w3} {
		if got := w.runCount.Load(); got != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, got)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should return immediately on empty workers list
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestWorkers_Add(t *testing.T) {
	ws := NewWorkers()
	ws.Add(newMockWorker())
	ws.Add(newMockWorker())

	if ws.Len() != 2 {
		t.Errorf("expected 2 workers, got %d", ws.Len())
	}
}
