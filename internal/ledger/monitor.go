package ledger

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Pinger probes a remote endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor tracks whether Horizon is reachable. It satisfies
// txengine.Connectivity.
type Monitor struct {
	pinger   Pinger
	clock    clockwork.Clock
	logger   *slog.Logger
	interval time.Duration
	timeout  time.Duration
	online   atomic.Bool
}

// NewMonitor creates a Monitor that assumes the network is reachable until a
// probe says otherwise.
func NewMonitor(pinger Pinger, interval, timeout time.Duration, clock clockwork.Clock, logger *slog.Logger) *Monitor {
	m := &Monitor{
		pinger:   pinger,
		clock:    clock,
		logger:   logger,
		interval: interval,
		timeout:  timeout,
	}
	m.online.Store(true)
	return m
}

// Online reports the result of the latest probe.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Run probes immediately and then every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.probe(ctx)

	ticker := m.clock.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.pinger.Ping(pctx)
	if ctx.Err() != nil {
		return
	}

	online := err == nil
	if was := m.online.Swap(online); was != online {
		if online {
			m.logger.Info("ledger network reachable again")
		} else {
			m.logger.Warn("ledger network unreachable", "error", err)
		}
	}
}
