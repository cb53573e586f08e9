package frontend

import (
	"context"
	"io"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/proyuen/toystore/pkg/snowflake"
)

func init() {
	_ = snowflake.Init(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeOrderClient is a hand-built stand-in for rpcapi.OrderClient, driven
// entirely by the fields a test sets before exercising it.
type fakeOrderClient struct {
	pingOK bool

	buyResp *rpcapi.BuyResponse
	buyErr  error

	checkResp *rpcapi.CheckResponse
	checkErr  error

	pings []int32
}

func (f *fakeOrderClient) Buy(ctx context.Context, in *rpcapi.BuyRequest, opts ...grpc.CallOption) (*rpcapi.BuyResponse, error) {
	return f.buyResp, f.buyErr
}

func (f *fakeOrderClient) Check(ctx context.Context, in *rpcapi.CheckRequest, opts ...grpc.CallOption) (*rpcapi.CheckResponse, error) {
	return f.checkResp, f.checkErr
}

func (f *fakeOrderClient) Ping(ctx context.Context, in *rpcapi.PingRequest, opts ...grpc.CallOption) (*rpcapi.PingResponse, error) {
	f.pings = append(f.pings, in.PingNumber)
	if !f.pingOK {
		return nil, status.Error(codes.Unavailable, "fake: unreachable")
	}
	return &rpcapi.PingResponse{PingNumber: in.PingNumber}, nil
}

func (f *fakeOrderClient) Propagate(ctx context.Context, in *rpcapi.PropagateRequest, opts ...grpc.CallOption) (*rpcapi.PropagateResponse, error) {
	return &rpcapi.PropagateResponse{}, nil
}

// fakeCatalogClient is a hand-built stand-in for rpcapi.CatalogClient.
type fakeCatalogClient struct {
	queryResp *rpcapi.QueryResponse
	queryErr  error
}

func (f *fakeCatalogClient) Query(ctx context.Context, in *rpcapi.QueryRequest, opts ...grpc.CallOption) (*rpcapi.QueryResponse, error) {
	return f.queryResp, f.queryErr
}

func (f *fakeCatalogClient) Order(ctx context.Context, in *rpcapi.OrderRequest, opts ...grpc.CallOption) (*rpcapi.OrderResponse, error) {
	return &rpcapi.OrderResponse{}, nil
}
