package catalog

import (
	"context"
	"log/slog"
	"time"
)

// Restocker periodically sweeps the table for depleted products and raises
// them back to restockQuantity, pushing an invalidation for each product it
// touches so cached front-end reads don't keep serving zero stock.
type Restocker struct {
	table       *Table
	invalidator *Invalidator
	interval    time.Duration
	logger      *slog.Logger
}

// NewRestocker builds a Restocker waking every interval.
func NewRestocker(table *Table, invalidator *Invalidator, interval time.Duration, logger *slog.Logger) *Restocker {
	return &Restocker{table: table, invalidator: invalidator, interval: interval, logger: logger}
}

// Run blocks, sweeping on every tick until ctx is cancelled.
func (r *Restocker) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Restocker) sweep(ctx context.Context) {
	names, err := r.table.depleted(ctx)
	if err != nil {
		r.logger.Warn("restock sweep: could not enumerate depleted products", slog.Any("error", err))
		return
	}

	for _, name := range names {
		ok, err := r.table.restock(ctx, name)
		if err != nil {
			r.logger.Warn("restock sweep: could not restock", slog.String("product", name), slog.Any("error", err))
			continue
		}
		if ok {
			r.logger.Info("restocked", slog.String("product", name), slog.Int("quantity", restockQuantity))
			r.invalidator.Enqueue(name)
		}
	}
}
