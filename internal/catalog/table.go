// Package catalog implements the catalog concurrency and restock engine:
// a reader/writer-protected product table, a background restocker, a
// durable CSV flusher and an asynchronous invalidation fan-out to the
// front-end.
package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"
)

// Sentinel results for Query and Order.
const (
	OrderSuccess            int32 = 1
	OrderInsufficientStock  int32 = -1
	OrderInvalidQuantity    int32 = -2
	OrderUnknownProduct     int32 = -3
)

// lockAcquireTimeout bounds how long Query/Order will wait for the table
// lock before surfacing a fatal error to the caller.
const lockAcquireTimeout = 1 * time.Second

// restockQuantity is the level the restocker raises a depleted product to.
const restockQuantity = 100

var (
	// ErrLockTimeout is returned when a Query/Order request could not
	// acquire its lock within lockAcquireTimeout.
	ErrLockTimeout = errors.New("catalog: lock acquisition timed out")
)

type row struct {
	price    decimal.Decimal
	quantity int
}

// Table is the product table. Keys (product names) are fixed at startup
// from the seed CSV and never added or removed at runtime, so membership
// can be checked against an unlocked map — only the mutable quantity
// field needs lock protection.
type Table struct {
	// sem implements a fair(ish) reader/writer lock with context-aware,
	// timeout-bounded acquisition: readers acquire weight 1, the writer
	// acquires the full capacity. golang.org/x/sync/semaphore.Weighted is
	// the only stdlib-adjacent primitive that supports Acquire(ctx, n),
	// which Go's sync.RWMutex does not.
	sem      *semaphore.Weighted
	capacity int64

	mu   sync.Mutex // guards rows map structure while Seed installs products
	rows map[string]*row

	dirty atomic.Bool
}

// maxReaders is large enough that concurrent Query calls never contend on
// semaphore weight alone; only the exclusive writer acquisition blocks them.
const maxReaders = int64(1 << 20)

// New builds an empty Table. Use Load to seed it from a CSV snapshot.
func New() *Table {
	return &Table{
		sem:      semaphore.NewWeighted(maxReaders),
		capacity: maxReaders,
		rows:     make(map[string]*row),
	}
}

func (t *Table) acquireRead(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, lockAcquireTimeout)
	defer cancel()
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return ErrLockTimeout
	}
	return nil
}

func (t *Table) releaseRead() {
	t.sem.Release(1)
}

func (t *Table) acquireWrite(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, lockAcquireTimeout)
	defer cancel()
	if err := t.sem.Acquire(ctx, t.capacity); err != nil {
		return ErrLockTimeout
	}
	return nil
}

func (t *Table) releaseWrite() {
	t.sem.Release(t.capacity)
}

// Seed installs the initial product set, e.g. loaded from the catalog CSV
// It must be called before any concurrent Query/Order traffic.
func (t *Table) Seed(products map[string]struct {
	Price    decimal.Decimal
	Quantity int
}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for name, p := range products {
		t.rows[name] = &row{price: p.Price, quantity: p.Quantity}
	}
}

// Query returns (price, quantity) for product, or a price of -1 and a
// quantity of -1 when the name is unknown.
func (t *Table) Query(ctx context.Context, product string) (decimal.Decimal, int32, error) {
	// Existence check against the unlocked map: names are immutable once
	// seeded, so no data race is possible here.
	r, ok := t.rows[product]
	if !ok {
		return decimal.NewFromInt(-1), -1, nil
	}

	if err := t.acquireRead(ctx); err != nil {
		return decimal.Decimal{}, 0, err
	}
	defer t.releaseRead()

	return r.price, int32(r.quantity), nil
}

// Order decrements quantity by qty if enough stock is available, returning
// one of the result sentinels defined above.
func (t *Table) Order(ctx context.Context, product string, qty int32) (int32, error) {
	if qty < 1 {
		return OrderInvalidQuantity, nil
	}

	r, ok := t.rows[product]
	if !ok {
		return OrderUnknownProduct, nil
	}

	if err := t.acquireWrite(ctx); err != nil {
		return 0, err
	}
	defer t.releaseWrite()

	if r.quantity < int(qty) {
		return OrderInsufficientStock, nil
	}
	r.quantity -= int(qty)
	t.dirty.Store(true)
	return OrderSuccess, nil
}

// depleted returns the names of every product currently at zero quantity.
// Called by the restocker under a read-weight acquisition.
func (t *Table) depleted(ctx context.Context) ([]string, error) {
	if err := t.acquireRead(ctx); err != nil {
		return nil, err
	}
	defer t.releaseRead()

	var names []string
	for name, r := range t.rows {
		if r.quantity == 0 {
			names = append(names, name)
		}
	}
	return names, nil
}

// restock sets product's quantity back to restockQuantity under the write
// lock. Returns false if the product vanished (impossible under the
// fixed-keys invariant, kept defensive for tests that build partial tables).
func (t *Table) restock(ctx context.Context, product string) (bool, error) {
	if err := t.acquireWrite(ctx); err != nil {
		return false, err
	}
	defer t.releaseWrite()

	r, ok := t.rows[product]
	if !ok {
		return false, nil
	}
	r.quantity = restockQuantity
	t.dirty.Store(true)
	return true, nil
}

// snapshot deep-copies every row under a read-weight acquisition, for the
// durable writer to persist without holding the lock during file I/O.
func (t *Table) snapshot(ctx context.Context) (map[string]row, error) {
	if err := t.acquireRead(ctx); err != nil {
		return nil, err
	}
	defer t.releaseRead()

	out := make(map[string]row, len(t.rows))
	for name, r := range t.rows {
		out[name] = *r
	}
	return out, nil
}

func (t *Table) takeDirty() bool {
	return t.dirty.CompareAndSwap(true, false)
}

func (t *Table) markDirty() {
	t.dirty.Store(true)
}
