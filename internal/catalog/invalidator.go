package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/proyuen/toystore/pkg/rpcx"
	"golang.org/x/sync/semaphore"
)

// invalidateDeadline bounds a single outbound Invalidate call.
const invalidateDeadline = 1 * time.Second

// Invalidator pushes cache-eviction notices to the front-end, bounded to a
// fixed number of concurrent in-flight calls. A full pool drops the
// notification rather than blocking the caller that triggered it: a missed
// invalidation only costs the front-end a stale read until the next
// successful push for that product (its cache has no expiry), never a
// correctness failure.
type Invalidator struct {
	client rpcapi.FrontEndClient
	sem    *semaphore.Weighted
	logger *slog.Logger
}

// NewInvalidator builds an Invalidator that allows at most maxWorkers
// concurrent Invalidate RPCs in flight.
func NewInvalidator(client rpcapi.FrontEndClient, maxWorkers int, logger *slog.Logger) *Invalidator {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Invalidator{
		client: client,
		sem:    semaphore.NewWeighted(int64(maxWorkers)),
		logger: logger,
	}
}

// Enqueue fires an asynchronous invalidation for product. Non-blocking.
func (inv *Invalidator) Enqueue(product string) {
	if !inv.sem.TryAcquire(1) {
		inv.logger.Warn("invalidation dropped: worker pool saturated", slog.String("product", product))
		return
	}
	go func() {
		defer inv.sem.Release(1)

		ctx, cancel := rpcx.WithDeadline(context.Background(), invalidateDeadline)
		defer cancel()

		if _, err := inv.client.Invalidate(ctx, &rpcapi.InvalidateRequest{ProductName: product}); err != nil {
			inv.logger.Warn("invalidation failed", slog.String("product", product), slog.Any("error", err))
		}
	}()
}
