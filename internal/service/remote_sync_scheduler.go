package service

import (
	"context"
	"time"
)

// startScheduler runs the periodic and reconnect triggers until ctx is done
// and enables debounced flushes after writes.
func (a *RemoteSyncAdapter) startScheduler(ctx context.Context) {
	a.schedMu.Lock()
	a.lifetime = ctx
	a.schedMu.Unlock()

	go func() {
		var tick <-chan time.Time
		if a.flushInterval > 0 {
			ticker := time.NewTicker(a.flushInterval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-ctx.Done():
				a.stopDebounce()
				return
			case <-tick:
				a.triggerFlush("interval")
			case <-a.reconnected:
				a.triggerFlush("reconnect")
			}
		}
	}()
}

// NotifyReconnected requests a flush after connectivity came back. Repeated
// notifications before the flush starts collapse into one.
func (a *RemoteSyncAdapter) NotifyReconnected() {
	select {
	case a.reconnected <- struct{}{}:
	default:
	}
}

// scheduleFlush (re)starts the debounce timer. Before Init there is no
// lifetime yet and the queued items wait for the initial flush.
func (a *RemoteSyncAdapter) scheduleFlush() {
	a.schedMu.Lock()
	defer a.schedMu.Unlock()

	if a.lifetime == nil || a.lifetime.Err() != nil {
		return
	}

	if a.debounce != nil {
		a.debounce.Reset(a.debounceDelay)
		return
	}
	a.debounce = time.AfterFunc(a.debounceDelay, func() {
		a.triggerFlush("debounce")
	})
}

func (a *RemoteSyncAdapter) stopDebounce() {
	a.schedMu.Lock()
	defer a.schedMu.Unlock()

	if a.debounce != nil {
		a.debounce.Stop()
	}
}

func (a *RemoteSyncAdapter) triggerFlush(reason string) {
	a.schedMu.Lock()
	ctx := a.lifetime
	a.schedMu.Unlock()

	if ctx == nil || ctx.Err() != nil {
		return
	}

	a.logger.Debug().Str("func", "RemoteSyncAdapter.triggerFlush").Str("reason", reason).Msg("flush triggered")
	if err := a.Flush(ctx); err != nil {
		a.logger.Err(err).Str("func", "RemoteSyncAdapter.triggerFlush").Str("reason", reason).Msg("flush failed")
	}
}
