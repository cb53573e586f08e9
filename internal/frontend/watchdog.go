package frontend

import (
	"context"
	"log/slog"
	"time"
)

// Watchdog probes the current leader on a fixed tick and triggers an
// election the moment it looks dead, so a failed leader is noticed even
// between requests.
type Watchdog struct {
	election *Election
	interval time.Duration
	logger   *slog.Logger
}

// NewWatchdog builds a Watchdog waking every interval.
func NewWatchdog(election *Election, interval time.Duration, logger *slog.Logger) *Watchdog {
	return &Watchdog{election: election, interval: interval, logger: logger}
}

// Run blocks, probing on every tick until ctx is cancelled.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.probe(ctx)
		}
	}
}

func (w *Watchdog) probe(ctx context.Context) {
	leader, ok := w.election.Leader()
	if !ok {
		if err := w.election.Elect(ctx); err != nil {
			w.logger.Warn("watchdog: election failed", slog.Any("error", err))
		}
		return
	}

	if !w.election.ping(ctx, leader.ID, 0) {
		w.logger.Warn("watchdog: leader unresponsive, re-electing", slog.Int("leader_id", int(leader.ID)))
		if err := w.election.Elect(ctx); err != nil {
			w.logger.Warn("watchdog: election failed", slog.Any("error", err))
		}
	}
}
