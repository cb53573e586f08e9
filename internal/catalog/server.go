package catalog

import (
	"context"
	"log/slog"

	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server adapts Table and Invalidator to the rpcapi.CatalogServer contract.
type Server struct {
	table       *Table
	invalidator *Invalidator
	logger      *slog.Logger
}

// NewServer builds a Server over table, pushing invalidations through inv.
func NewServer(table *Table, inv *Invalidator, logger *slog.Logger) *Server {
	return &Server{table: table, invalidator: inv, logger: logger}
}

var _ rpcapi.CatalogServer = (*Server)(nil)

// Query returns the current price and quantity for a product, or
// (-1, -1) if the name is unknown.
func (s *Server) Query(ctx context.Context, req *rpcapi.QueryRequest) (*rpcapi.QueryResponse, error) {
	price, qty, err := s.table.Query(ctx, req.ProductName)
	if err != nil {
		return nil, lockErr(err)
	}
	if qty == -1 {
		return &rpcapi.QueryResponse{Price: "-1", Quantity: -1}, nil
	}
	return &rpcapi.QueryResponse{Price: price.StringFixed(2), Quantity: qty}, nil
}

// Order decrements stock for a product and, on success, asynchronously
// invalidates the front-end's cached entry for it.
func (s *Server) Order(ctx context.Context, req *rpcapi.OrderRequest) (*rpcapi.OrderResponse, error) {
	result, err := s.table.Order(ctx, req.ProductName, req.Quantity)
	if err != nil {
		return nil, lockErr(err)
	}
	if result == OrderSuccess {
		s.invalidator.Enqueue(req.ProductName)
	}
	return &rpcapi.OrderResponse{Result: result}, nil
}

func lockErr(err error) error {
	return status.Error(codes.DeadlineExceeded, err.Error())
}

// seedFromRows converts a freshly loaded CSV map into the shape Table.Seed
// expects.
func seedFromRows(rows map[string]seedRow) map[string]struct {
	Price    decimal.Decimal
	Quantity int
} {
	out := make(map[string]struct {
		Price    decimal.Decimal
		Quantity int
	}, len(rows))
	for name, r := range rows {
		out[name] = struct {
			Price    decimal.Decimal
			Quantity int
		}{Price: r.Price, Quantity: r.Quantity}
	}
	return out
}

// Load reads path and returns a Table seeded from it. A missing file yields
// an empty, usable table.
func Load(path string) (*Table, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	t := New()
	t.Seed(seedFromRows(rows))
	return t, nil
}
