package frontend

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/proyuen/toystore/pkg/rpcx"
)

const pingDeadline = 1 * time.Second

// ErrNoReplicaReachable is returned when an election finds every replica
// unreachable. Callers handle it as an ordinary error: the request path
// returns it to the handler and the watchdog logs it; the front-end process
// keeps running.
var ErrNoReplicaReachable = errors.New("frontend: no order replica reachable")

// ReplicaHandle is one order replica the front-end can route to.
type ReplicaHandle struct {
	ID    int32
	Addr  string
	Order rpcapi.OrderClient
}

// Election owns order_leader_id and serializes re-election attempts behind
// a single mutex, the way the front-end process-wide leader state is
// supposed to live in one guarded value rather than scattered globals.
type Election struct {
	replicas []*ReplicaHandle // sorted ascending by ID

	mu       sync.Mutex // only election itself holds this; reads are lock-free
	leaderID atomic.Int32

	logger *slog.Logger
}

// NewElection builds an Election over replicas, which need not be
// pre-sorted.
func NewElection(replicas []*ReplicaHandle, logger *slog.Logger) *Election {
	sorted := make([]*ReplicaHandle, len(replicas))
	copy(sorted, replicas)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Election{replicas: sorted, logger: logger}
}

// LeaderID reads the current leader id without locking, the fast path every
// request handler uses.
func (e *Election) LeaderID() int32 {
	return e.leaderID.Load()
}

// Leader resolves the current leader id to its replica handle.
func (e *Election) Leader() (*ReplicaHandle, bool) {
	return e.find(e.LeaderID())
}

func (e *Election) find(id int32) (*ReplicaHandle, bool) {
	if id == 0 {
		return nil, false
	}
	for _, r := range e.replicas {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Elect runs the election procedure: re-probe the cached leader first; on
// failure, probe replicas in ascending id order and adopt the first live
// one; then announce the new leader to every replica from its id upward.
// Only one election runs at a time.
func (e *Election) Elect(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cur := e.leaderID.Load(); cur != 0 {
		if e.ping(ctx, cur, 0) {
			return nil
		}
		e.logger.Warn("election: cached leader unreachable", slog.Int("leader_id", int(cur)))
	}

	for _, r := range e.replicas {
		if e.ping(ctx, r.ID, 0) {
			e.leaderID.Store(r.ID)
			e.logger.Info("election: new leader", slog.Int("leader_id", int(r.ID)))
			e.announce(ctx, r.ID)
			return nil
		}
	}

	e.leaderID.Store(0)
	return ErrNoReplicaReachable
}

// announce calls Ping(newID) on every replica with id >= newID, logging and
// ignoring any failure.
func (e *Election) announce(ctx context.Context, newID int32) {
	for _, r := range e.replicas {
		if r.ID < newID {
			continue
		}
		if !e.ping(ctx, r.ID, newID) {
			e.logger.Warn("election: announce failed", slog.Int("replica_id", int(r.ID)))
		}
	}
}

func (e *Election) ping(ctx context.Context, replicaID, pingNumber int32) bool {
	r, ok := e.find(replicaID)
	if !ok {
		return false
	}
	pctx, cancel := rpcx.WithDeadline(ctx, pingDeadline)
	defer cancel()
	_, err := r.Order.Ping(pctx, &rpcapi.PingRequest{PingNumber: pingNumber})
	return err == nil
}
