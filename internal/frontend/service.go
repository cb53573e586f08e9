package frontend

import (
	"context"
	"log/slog"
	"time"

	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/proyuen/toystore/pkg/rpcx"
)

const (
	catalogQueryDeadline = 3 * time.Second
	buyDeadline          = 1 * time.Second
	checkDeadline        = 3 * time.Second
)

// Service is the front-end's request-routing core: cache-or-catalog reads,
// leader-retry writes, and the election it falls back on when the leader
// looks dead. HTTP concerns live in handlers.go; this type never imports
// gin.
type Service struct {
	cache    *Cache
	election *Election
	catalog  rpcapi.CatalogClient
	logger   *slog.Logger
}

// NewService builds a Service over cache, election and catalog.
func NewService(cache *Cache, election *Election, catalog rpcapi.CatalogClient, logger *slog.Logger) *Service {
	return &Service{cache: cache, election: election, catalog: catalog, logger: logger}
}

// QueryResult is Query's outcome: Found distinguishes a genuine 404 from a
// transient backend failure (nil err, Found false means "unknown product").
type QueryResult struct {
	Price    string
	Quantity int32
	Found    bool
}

// Query consults the cache first; on a miss it asks the catalog directly
// and installs the result in the cache before returning it.
func (s *Service) Query(ctx context.Context, product string) (QueryResult, error) {
	if e, ok := s.cache.Get(product); ok {
		return QueryResult{Price: e.Price, Quantity: e.Quantity, Found: true}, nil
	}

	qctx, cancel := rpcx.WithDeadline(ctx, catalogQueryDeadline)
	resp, err := s.catalog.Query(qctx, &rpcapi.QueryRequest{ProductName: product})
	cancel()
	if err != nil {
		return QueryResult{}, err
	}
	if resp.Quantity == -1 {
		return QueryResult{Found: false}, nil
	}

	s.cache.Set(product, Entry{Price: resp.Price, Quantity: resp.Quantity})
	return QueryResult{Price: resp.Price, Quantity: resp.Quantity, Found: true}, nil
}

// Buy routes a purchase to the current leader, electing a new one and
// retrying once if the leader turns out to be unreachable.
func (s *Service) Buy(ctx context.Context, product string, quantity int32) (int32, error) {
	for attempt := 0; attempt < 2; attempt++ {
		leader, ok := s.election.Leader()
		if !ok {
			if err := s.election.Elect(ctx); err != nil {
				return 0, err
			}
			leader, ok = s.election.Leader()
			if !ok {
				return 0, ErrNoReplicaReachable
			}
		}

		bctx, cancel := rpcx.WithDeadline(ctx, buyDeadline)
		resp, err := leader.Order.Buy(bctx, &rpcapi.BuyRequest{ProductName: product, Quantity: quantity})
		cancel()
		if err == nil {
			return resp.OrderNumber, nil
		}
		if !rpcx.Unreachable(err) {
			return 0, err
		}

		s.logger.Warn("buy: leader unreachable, re-electing", slog.Int("leader_id", int(leader.ID)))
		if electErr := s.election.Elect(ctx); electErr != nil {
			return 0, electErr
		}
	}
	return 0, ErrNoReplicaReachable
}

// Check routes an order lookup to the current leader with the same
// leader-retry behavior as Buy.
func (s *Service) Check(ctx context.Context, orderNumber int32) (string, int32, error) {
	for attempt := 0; attempt < 2; attempt++ {
		leader, ok := s.election.Leader()
		if !ok {
			if err := s.election.Elect(ctx); err != nil {
				return "", 0, err
			}
			leader, ok = s.election.Leader()
			if !ok {
				return "", 0, ErrNoReplicaReachable
			}
		}

		cctx, cancel := rpcx.WithDeadline(ctx, checkDeadline)
		resp, err := leader.Order.Check(cctx, &rpcapi.CheckRequest{OrderNumber: orderNumber})
		cancel()
		if err == nil {
			return resp.ProductName, resp.Quantity, nil
		}
		if !rpcx.Unreachable(err) {
			return "", 0, err
		}

		s.logger.Warn("check: leader unreachable, re-electing", slog.Int("leader_id", int(leader.ID)))
		if electErr := s.election.Elect(ctx); electErr != nil {
			return "", 0, electErr
		}
	}
	return "", 0, ErrNoReplicaReachable
}

// Invalidate implements the catalog's one-way cache-eviction push.
func (s *Service) Invalidate(product string) {
	s.cache.Invalidate(product)
}
