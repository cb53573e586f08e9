package rpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// InvalidateRequest/InvalidateResponse implement FrontEnd.Invalidate:
// the catalog's one-way push to evict a cached product.
type InvalidateRequest struct {
	ProductName string `json:"product_name"`
}

type InvalidateResponse struct {
	Response int32 `json:"response"`
}

// FrontEndServer is the server-side contract for the front-end's
// invalidation endpoint.
type FrontEndServer interface {
	Invalidate(context.Context, *InvalidateRequest) (*InvalidateResponse, error)
}

// FrontEndClient is the client-side contract, used only by the catalog.
type FrontEndClient interface {
	Invalidate(ctx context.Context, in *InvalidateRequest, opts ...grpc.CallOption) (*InvalidateResponse, error)
}

func _FrontEnd_Invalidate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(InvalidateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontEndServer).Invalidate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/frontend.FrontEnd/Invalidate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FrontEndServer).Invalidate(ctx, req.(*InvalidateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// FrontEnd_ServiceDesc is the grpc.ServiceDesc for the front-end service.
var FrontEnd_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "frontend.FrontEnd",
	HandlerType: (*FrontEndServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Invalidate", Handler: _FrontEnd_Invalidate_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "frontend.proto",
}

// RegisterFrontEndServer registers srv with s.
func RegisterFrontEndServer(s grpc.ServiceRegistrar, srv FrontEndServer) {
	s.RegisterService(&FrontEnd_ServiceDesc, srv)
}

type frontEndClient struct {
	cc *grpc.ClientConn
}

// NewFrontEndClient wraps cc as a FrontEndClient.
func NewFrontEndClient(cc *grpc.ClientConn) FrontEndClient {
	return &frontEndClient{cc: cc}
}

func (c *frontEndClient) Invalidate(ctx context.Context, in *InvalidateRequest, opts ...grpc.CallOption) (*InvalidateResponse, error) {
	out := new(InvalidateResponse)
	if err := c.cc.Invoke(ctx, "/frontend.FrontEnd/Invalidate", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
