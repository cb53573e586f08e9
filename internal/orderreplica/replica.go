// Package orderreplica implements one of the three order replicas: monotonic
// order numbering at the leader, asynchronous propagation to followers, a
// durable append-only log, and gap-filling recovery over a bidirectional
// stream.
package orderreplica

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/proyuen/toystore/pkg/rpcx"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
)

// Result sentinels for Buy, mirroring the catalog's Order result codes that
// pass straight through the leader commit path.
const (
	BuyInvalidQuantity  int32 = -2
	BuyUnknownProduct   int32 = -3
	BuyInsufficientStock int32 = -1
)

const (
	catalogOrderDeadline = 3 * time.Second
	propagateDeadline    = 3 * time.Second
	recoveryDeadline     = 3 * time.Second
)

// Record is one committed order: product name plus quantity bought.
type Record struct {
	ProductName string
	Quantity    int32
}

// Peer is one other replica this replica propagates to and recovers from.
type Peer struct {
	ID       int32
	Addr     string
	conn     *grpc.ClientConn
	order    rpcapi.OrderClient
	recovery rpcapi.RecoveryClient
}

// NewPeer dials addr and builds the Order/Recovery clients for id.
func NewPeer(id int32, addr string) (*Peer, error) {
	conn, err := rpcx.Dial(addr)
	if err != nil {
		return nil, err
	}
	return &Peer{
		ID:       id,
		Addr:     addr,
		conn:     conn,
		order:    rpcapi.NewOrderClient(conn),
		recovery: rpcapi.NewRecoveryClient(conn),
	}, nil
}

// Replica holds the full mutable state of one order replica: its log, its
// order-number cursor, the leader it currently believes in, and the peer
// handles used for propagation and recovery. The order handler and the
// recovery handler are two collaborators sharing this one value rather than
// holding references to each other.
type Replica struct {
	componentID int32
	logPath     string

	leaderMu sync.Mutex
	leaderID int32
	isLeader atomic.Bool
	epoch    atomic.Int32

	numMu           sync.Mutex
	nextOrderNumber int32

	logMu       sync.RWMutex
	log         map[int32]Record
	writeCursor int32

	catalog rpcapi.CatalogClient

	peers        []*Peer
	propagateSem *semaphore.Weighted

	logger *slog.Logger
}

// Config bundles the dependencies New needs to build a Replica.
type Config struct {
	ComponentID int32
	LogPath     string
	Catalog     rpcapi.CatalogClient
	Peers       []*Peer
	MaxWorkers  int
	Logger      *slog.Logger
}

// New loads logPath (or starts from an empty, header-only log) and builds a
// ready-to-serve Replica. It does not yet run startup recovery; call Recover
// separately once the server is listening so peers can reach this replica
// back for its own RequestMissingLogs during their own startup.
func New(cfg Config) (*Replica, error) {
	log, err := LoadLog(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	var maxSeen int32 = -1
	for n := range log {
		if n > maxSeen {
			maxSeen = n
		}
	}

	maxWorkers := cfg.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	return &Replica{
		componentID:     cfg.ComponentID,
		logPath:         cfg.LogPath,
		nextOrderNumber: maxSeen + 1,
		log:             log,
		writeCursor:     maxSeen + 1,
		catalog:         cfg.Catalog,
		peers:           cfg.Peers,
		propagateSem:    semaphore.NewWeighted(int64(maxWorkers)),
		logger:          cfg.Logger,
	}, nil
}

// buy validates the quantity, decrements catalog stock, assigns the next
// order number, commits it to the in-memory log and fans the record out to
// every peer. A non-success catalog result (or an invalid quantity) is
// returned unchanged without touching the log or order-number cursor.
func (r *Replica) buy(ctx context.Context, product string, qty int32) (int32, error) {
	if qty < 1 {
		return BuyInvalidQuantity, nil
	}

	octx, cancel := rpcx.WithDeadline(ctx, catalogOrderDeadline)
	result, err := r.catalog.Order(octx, &rpcapi.OrderRequest{ProductName: product, Quantity: qty})
	cancel()
	if err != nil {
		return 0, err
	}
	if result.Result != 1 {
		return result.Result, nil
	}

	r.numMu.Lock()
	n := r.nextOrderNumber
	r.nextOrderNumber = n + 1
	r.numMu.Unlock()

	r.logMu.Lock()
	r.log[n] = Record{ProductName: product, Quantity: qty}
	r.logMu.Unlock()

	r.fanOutPropagate(n, product, qty)

	return n, nil
}

// check returns the committed record for orderNumber, or ("", -1) if this
// replica holds no binding for it.
func (r *Replica) check(orderNumber int32) (string, int32) {
	r.logMu.RLock()
	defer r.logMu.RUnlock()

	rec, ok := r.log[orderNumber]
	if !ok {
		return "", -1
	}
	return rec.ProductName, rec.Quantity
}

// ping is both a liveness probe (pingNumber == 0) and a leader announcement
// (pingNumber > 0). Announcements always update the recorded leader id. The
// epoch counter only advances on the rising edge of this replica becoming
// leader itself; an announcement naming another replica clears the leader
// flag.
func (r *Replica) ping(pingNumber int32) int32 {
	if pingNumber == 0 {
		return 0
	}

	r.leaderMu.Lock()
	r.leaderID = pingNumber
	r.leaderMu.Unlock()

	becameLeader := pingNumber == r.componentID
	if becameLeader && r.isLeader.CompareAndSwap(false, true) {
		r.epoch.Add(1)
	} else if !becameLeader {
		r.isLeader.Store(false)
	}

	return 0
}

// propagateFollower is the follower-side receipt of a leader-committed record.
func (r *Replica) propagateFollower(orderNumber int32, product string, qty int32) int32 {
	r.logMu.Lock()
	r.log[orderNumber] = Record{ProductName: product, Quantity: qty}
	r.logMu.Unlock()

	r.numMu.Lock()
	if orderNumber+1 > r.nextOrderNumber {
		r.nextOrderNumber = orderNumber + 1
	}
	r.numMu.Unlock()

	return 0
}

// nextOrderNumberSnapshot reports this replica's current next order number,
// the range a restarting peer needs to catch up to.
func (r *Replica) nextOrderNumberSnapshot() int32 {
	r.numMu.Lock()
	defer r.numMu.Unlock()
	return r.nextOrderNumber
}

func (r *Replica) fanOutPropagate(orderNumber int32, product string, qty int32) {
	epoch := r.epoch.Load()
	for _, p := range r.peers {
		p := p
		if !r.propagateSem.TryAcquire(1) {
			r.logger.Warn("propagate dropped: worker pool saturated",
				slog.Int("peer", int(p.ID)), slog.Int("order_number", int(orderNumber)))
			continue
		}
		go func() {
			defer r.propagateSem.Release(1)

			ctx, cancel := rpcx.WithDeadline(context.Background(), propagateDeadline)
			defer cancel()

			_, err := p.order.Propagate(ctx, &rpcapi.PropagateRequest{
				OrderNumber: orderNumber,
				ProductName: product,
				Quantity:    qty,
				Epoch:       epoch,
			})
			if err != nil {
				r.logger.Warn("propagate failed", slog.Int("peer", int(p.ID)),
					slog.Int("order_number", int(orderNumber)), slog.Any("error", err))
			}
		}()
	}
}
