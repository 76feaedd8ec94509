package sync

import (
	"context"
	"time"

	"github.com/aditwb/storysync/internal/logging"
	"github.com/sethvargo/go-retry"
)

// Pinger probes remote reachability. The HTTP gateway satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

const probeTimeout = 3 * time.Second

// Monitor watches connectivity by probing the gateway on an interval and
// reports transitions to the engine. A single dropped probe does not flip
// the state to offline: each check retries with a short backoff first.
type Monitor struct {
	pinger   Pinger
	engine   *Engine
	log      logging.Logger
	interval time.Duration
}

func NewMonitor(pinger Pinger, engine *Engine, log logging.Logger, interval time.Duration) *Monitor {
	return &Monitor{
		pinger:   pinger,
		engine:   engine,
		log:      log.With("component", "connectivity"),
		interval: interval,
	}
}

// Run probes until ctx is cancelled. It performs one immediate probe so the
// engine's optimistic initial online state is corrected right away.
func (m *Monitor) Run(ctx context.Context) {
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if err := m.pinger.Ping(probeCtx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})

	if ctx.Err() != nil {
		return
	}
	m.engine.SetOnline(ctx, err == nil)
}
