package orderreplica

import (
	"context"

	"github.com/proyuen/toystore/internal/rpcapi"
)

var (
	_ rpcapi.OrderServer    = (*Replica)(nil)
	_ rpcapi.RecoveryServer = (*Replica)(nil)
)

// Buy is the grpc adapter over the internal buy commit path.
func (r *Replica) Buy(ctx context.Context, req *rpcapi.BuyRequest) (*rpcapi.BuyResponse, error) {
	n, err := r.buy(ctx, req.ProductName, req.Quantity)
	if err != nil {
		return nil, err
	}
	return &rpcapi.BuyResponse{OrderNumber: n}, nil
}

// Check is the grpc adapter over the internal log lookup.
func (r *Replica) Check(_ context.Context, req *rpcapi.CheckRequest) (*rpcapi.CheckResponse, error) {
	name, qty := r.check(req.OrderNumber)
	return &rpcapi.CheckResponse{ProductName: name, Quantity: qty}, nil
}

// Ping is the grpc adapter over the internal liveness/leader-announce logic.
func (r *Replica) Ping(_ context.Context, req *rpcapi.PingRequest) (*rpcapi.PingResponse, error) {
	result := r.ping(req.PingNumber)
	return &rpcapi.PingResponse{PingNumber: result}, nil
}

// Propagate is the grpc adapter over the follower-side record receipt.
func (r *Replica) Propagate(_ context.Context, req *rpcapi.PropagateRequest) (*rpcapi.PropagateResponse, error) {
	result := r.propagateFollower(req.OrderNumber, req.ProductName, req.Quantity)
	return &rpcapi.PropagateResponse{PingNumber: result}, nil
}
