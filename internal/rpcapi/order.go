package rpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// BuyRequest/BuyResponse implement Order.Buy.
type BuyRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
}

type BuyResponse struct {
	OrderNumber int32 `json:"order_number"`
}

// CheckRequest/CheckResponse implement Order.Check.
type CheckRequest struct {
	OrderNumber int32 `json:"order_number"`
}

type CheckResponse struct {
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
}

// PingRequest/PingResponse implement Order.Ping.
type PingRequest struct {
	PingNumber int32 `json:"ping_number"`
}

type PingResponse struct {
	PingNumber int32 `json:"ping_number"`
}

// PropagateRequest/PropagateResponse implement Order.Propagate.
type PropagateRequest struct {
	OrderNumber int32 `json:"order_number"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	// Epoch is reserved diagnostics: the leader's
	// "times I have become leader" counter at the moment this record was
	// committed. Followers never use it for conflict resolution.
	Epoch int32 `json:"epoch"`
}

type PropagateResponse struct {
	PingNumber int32 `json:"ping_number"`
}

// OrderServer is the server-side contract for the order replica service.
type OrderServer interface {
	Buy(context.Context, *BuyRequest) (*BuyResponse, error)
	Check(context.Context, *CheckRequest) (*CheckResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Propagate(context.Context, *PropagateRequest) (*PropagateResponse, error)
}

// OrderClient is the client-side contract for the order replica service.
type OrderClient interface {
	Buy(ctx context.Context, in *BuyRequest, opts ...grpc.CallOption) (*BuyResponse, error)
	Check(ctx context.Context, in *CheckRequest, opts ...grpc.CallOption) (*CheckResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Propagate(ctx context.Context, in *PropagateRequest, opts ...grpc.CallOption) (*PropagateResponse, error)
}

func _Order_Buy_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(BuyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServer).Buy(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/order.Order/Buy"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServer).Buy(ctx, req.(*BuyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Order_Check_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServer).Check(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/order.Order/Check"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServer).Check(ctx, req.(*CheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Order_Ping_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/order.Order/Ping"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Order_Propagate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PropagateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServer).Propagate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/order.Order/Propagate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServer).Propagate(ctx, req.(*PropagateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Order_ServiceDesc is the grpc.ServiceDesc for the order replica service.
var Order_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "order.Order",
	HandlerType: (*OrderServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Buy", Handler: _Order_Buy_Handler},
		{MethodName: "Check", Handler: _Order_Check_Handler},
		{MethodName: "Ping", Handler: _Order_Ping_Handler},
		{MethodName: "Propagate", Handler: _Order_Propagate_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "order.proto",
}

// RegisterOrderServer registers srv with s.
func RegisterOrderServer(s grpc.ServiceRegistrar, srv OrderServer) {
	s.RegisterService(&Order_ServiceDesc, srv)
}

type orderClient struct {
	cc *grpc.ClientConn
}

// NewOrderClient wraps cc as an OrderClient.
func NewOrderClient(cc *grpc.ClientConn) OrderClient {
	return &orderClient{cc: cc}
}

func (c *orderClient) Buy(ctx context.Context, in *BuyRequest, opts ...grpc.CallOption) (*BuyResponse, error) {
	out := new(BuyResponse)
	if err := c.cc.Invoke(ctx, "/order.Order/Buy", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderClient) Check(ctx context.Context, in *CheckRequest, opts ...grpc.CallOption) (*CheckResponse, error) {
	out := new(CheckResponse)
	if err := c.cc.Invoke(ctx, "/order.Order/Check", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, "/order.Order/Ping", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderClient) Propagate(ctx context.Context, in *PropagateRequest, opts ...grpc.CallOption) (*PropagateResponse, error) {
	out := new(PropagateResponse)
	if err := c.cc.Invoke(ctx, "/order.Order/Propagate", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
