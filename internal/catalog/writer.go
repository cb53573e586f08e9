package catalog

import (
	"context"
	"log/slog"
	"time"
)

// flushInterval is how often the writer checks for a dirty table.
const flushInterval = 1 * time.Second

// Writer durably persists the table to its backing CSV file whenever it has
// been mutated since the last flush. Runs off the lock-holding path: it
// takes a read-weight snapshot, then does file I/O without blocking
// concurrent Query/Order traffic.
type Writer struct {
	table  *Table
	path   string
	logger *slog.Logger
}

// NewWriter builds a Writer for table, persisting to path.
func NewWriter(table *Table, path string, logger *slog.Logger) *Writer {
	return &Writer{table: table, path: path, logger: logger}
}

// Run blocks, flushing on a fixed tick until ctx is cancelled. On shutdown
// it performs one final best-effort flush with a fresh background context.
func (w *Writer) Run(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.flush(context.Background())
			return
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Writer) flush(ctx context.Context) {
	if !w.table.takeDirty() {
		return
	}

	snap, err := w.table.snapshot(ctx)
	if err != nil {
		w.table.markDirty()
		w.logger.Warn("flush: could not snapshot table", slog.Any("error", err))
		return
	}

	if err := WriteCSV(w.path, snap); err != nil {
		w.table.markDirty()
		w.logger.Error("flush: could not write catalog file", slog.String("path", w.path), slog.Any("error", err))
		return
	}
}
