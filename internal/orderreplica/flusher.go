package orderreplica

import (
	"context"
	"log/slog"
	"time"
)

const flushInterval = 1 * time.Second

// Flusher is the dedicated worker that persists committed records to the
// durable log and triggers gap-filling recovery when it finds a hole
// between write_cursor and next_order_number.
type Flusher struct {
	replica *Replica
	logger  *slog.Logger
}

// NewFlusher builds a Flusher for r.
func NewFlusher(r *Replica, logger *slog.Logger) *Flusher {
	return &Flusher{replica: r, logger: logger}
}

// Run blocks, flushing on a fixed tick until ctx is cancelled.
func (f *Flusher) Run(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.flush(context.Background())
			return
		case <-ticker.C:
			f.flush(ctx)
		}
	}
}

func (f *Flusher) flush(ctx context.Context) {
	r := f.replica

	r.logMu.RLock()
	cursor := r.writeCursor
	var batch []LogEntry
	for {
		rec, ok := r.log[cursor]
		if !ok {
			break
		}
		batch = append(batch, LogEntry{OrderNumber: cursor, ProductName: rec.ProductName, Quantity: rec.Quantity})
		cursor++
	}
	r.logMu.RUnlock()

	if len(batch) > 0 {
		if err := AppendLog(r.logPath, batch); err != nil {
			f.logger.Error("flusher: append failed", slog.Any("error", err))
			return
		}
		r.logMu.Lock()
		r.writeCursor = cursor
		r.logMu.Unlock()
	}

	nextNum := r.nextOrderNumberSnapshot()

	r.logMu.RLock()
	writeCursor := r.writeCursor
	var missing []int32
	for n := writeCursor; n < nextNum; n++ {
		if _, ok := r.log[n]; !ok {
			missing = append(missing, n)
		}
	}
	r.logMu.RUnlock()

	if len(missing) > 0 {
		f.logger.Info("flusher: gap detected, requesting missing logs", slog.Int("count", len(missing)))
		recs, err := r.recoverFromAnyPeer(ctx, missing)
		if err != nil {
			f.logger.Warn("flusher: gap fill failed", slog.Any("error", err))
			return
		}
		r.logMu.Lock()
		for n, rec := range recs {
			r.log[n] = rec
		}
		r.logMu.Unlock()
	}
}
