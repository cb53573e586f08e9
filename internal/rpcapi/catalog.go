// Package rpcapi is the RPC surface expressed as grpc.ServiceDesc
// values carrying plain Go structs over the json codec registered in
// pkg/rpcx, in the same shape protoc-gen-go-grpc would emit from a .proto
// file had protoc been available in this environment.
package rpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// QueryRequest/QueryResponse implement Catalog.Query.
type QueryRequest struct {
	ProductName string `json:"product_name"`
}

type QueryResponse struct {
	Price    string `json:"price"`
	Quantity int32  `json:"quantity"`
}

// OrderRequest/OrderResponse implement Catalog.Order.
type OrderRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
}

type OrderResponse struct {
	Result int32 `json:"result"`
}

// CatalogServer is the server-side contract for the catalog service.
type CatalogServer interface {
	Query(context.Context, *QueryRequest) (*QueryResponse, error)
	Order(context.Context, *OrderRequest) (*OrderResponse, error)
}

// CatalogClient is the client-side contract for the catalog service.
type CatalogClient interface {
	Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error)
	Order(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
}

func _Catalog_Query_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(QueryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).Query(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/catalog.Catalog/Query"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServer).Query(ctx, req.(*QueryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Catalog_Order_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(OrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).Order(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/catalog.Catalog/Order"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServer).Order(ctx, req.(*OrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Catalog_ServiceDesc is the grpc.ServiceDesc for the catalog service.
var Catalog_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "catalog.Catalog",
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Query", Handler: _Catalog_Query_Handler},
		{MethodName: "Order", Handler: _Catalog_Order_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog.proto",
}

// RegisterCatalogServer registers srv with s.
func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&Catalog_ServiceDesc, srv)
}

type catalogClient struct {
	cc *grpc.ClientConn
}

// NewCatalogClient wraps cc as a CatalogClient.
func NewCatalogClient(cc *grpc.ClientConn) CatalogClient {
	return &catalogClient{cc: cc}
}

func (c *catalogClient) Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error) {
	out := new(QueryResponse)
	if err := c.cc.Invoke(ctx, "/catalog.Catalog/Query", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogClient) Order(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.cc.Invoke(ctx, "/catalog.Catalog/Order", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
