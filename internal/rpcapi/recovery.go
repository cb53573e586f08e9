package rpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// BackOnlineRequest/BackOnlineResponse implement Recovery.BackOnline.
type BackOnlineRequest struct{}

type BackOnlineResponse struct {
	NextOrderNumber int32 `json:"next_order_number"`
}

// MissingLogRequest is one element of the client->server stream in
// RequestMissingLogs: a single order number the caller wants to fill a gap
// for. ComponentID is carried but reserved; recovery ignores it.
type MissingLogRequest struct {
	OrderNumber int32 `json:"order_number"`
	ComponentID int32 `json:"component_id"`
}

// MissingLogRecord is one element of the server->client stream: the
// requested record, if the server holds it.
type MissingLogRecord struct {
	OrderNumber int32  `json:"order_number"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	Found       bool   `json:"found"`
}

// RecoveryServer is the server-side contract for the recovery service:
// a unary BackOnline probe plus a bidirectional RequestMissingLogs stream.
type RecoveryServer interface {
	BackOnline(context.Context, *BackOnlineRequest) (*BackOnlineResponse, error)
	RequestMissingLogs(Recovery_RequestMissingLogsServer) error
}

// Recovery_RequestMissingLogsServer is the server-side handle for the
// bidirectional stream.
type Recovery_RequestMissingLogsServer interface {
	Send(*MissingLogRecord) error
	Recv() (*MissingLogRequest, error)
	grpc.ServerStream
}

type recoveryRequestMissingLogsServer struct {
	grpc.ServerStream
}

func (x *recoveryRequestMissingLogsServer) Send(m *MissingLogRecord) error {
	return x.ServerStream.SendMsg(m)
}

func (x *recoveryRequestMissingLogsServer) Recv() (*MissingLogRequest, error) {
	m := new(MissingLogRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _Recovery_BackOnline_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(BackOnlineRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecoveryServer).BackOnline(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/recovery.Recovery/BackOnline"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecoveryServer).BackOnline(ctx, req.(*BackOnlineRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Recovery_RequestMissingLogs_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(RecoveryServer).RequestMissingLogs(&recoveryRequestMissingLogsServer{ServerStream: stream})
}

// Recovery_ServiceDesc is the grpc.ServiceDesc for the recovery service.
var Recovery_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "recovery.Recovery",
	HandlerType: (*RecoveryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "BackOnline", Handler: _Recovery_BackOnline_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "RequestMissingLogs",
			Handler:       _Recovery_RequestMissingLogs_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "recovery.proto",
}

// RegisterRecoveryServer registers srv with s.
func RegisterRecoveryServer(s grpc.ServiceRegistrar, srv RecoveryServer) {
	s.RegisterService(&Recovery_ServiceDesc, srv)
}

// RecoveryClient is the client-side contract for the recovery service.
type RecoveryClient interface {
	BackOnline(ctx context.Context, in *BackOnlineRequest, opts ...grpc.CallOption) (*BackOnlineResponse, error)
	RequestMissingLogs(ctx context.Context, opts ...grpc.CallOption) (Recovery_RequestMissingLogsClient, error)
}

// Recovery_RequestMissingLogsClient is the client-side handle for the
// bidirectional stream.
type Recovery_RequestMissingLogsClient interface {
	Send(*MissingLogRequest) error
	Recv() (*MissingLogRecord, error)
	grpc.ClientStream
}

type recoveryClient struct {
	cc *grpc.ClientConn
}

// NewRecoveryClient wraps cc as a RecoveryClient.
func NewRecoveryClient(cc *grpc.ClientConn) RecoveryClient {
	return &recoveryClient{cc: cc}
}

func (c *recoveryClient) BackOnline(ctx context.Context, in *BackOnlineRequest, opts ...grpc.CallOption) (*BackOnlineResponse, error) {
	out := new(BackOnlineResponse)
	if err := c.cc.Invoke(ctx, "/recovery.Recovery/BackOnline", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recoveryClient) RequestMissingLogs(ctx context.Context, opts ...grpc.CallOption) (Recovery_RequestMissingLogsClient, error) {
	stream, err := c.cc.NewStream(ctx, &Recovery_ServiceDesc.Streams[0], "/recovery.Recovery/RequestMissingLogs", opts...)
	if err != nil {
		return nil, err
	}
	return &recoveryRequestMissingLogsClient{ClientStream: stream}, nil
}

type recoveryRequestMissingLogsClient struct {
	grpc.ClientStream
}

func (x *recoveryRequestMissingLogsClient) Send(m *MissingLogRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *recoveryRequestMissingLogsClient) Recv() (*MissingLogRecord, error) {
	m := new(MissingLogRecord)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
