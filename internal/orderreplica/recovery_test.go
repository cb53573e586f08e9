package orderreplica

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// fakeMissingLogsStream plays back a fixed set of records for whatever
// MissingLogRequests it receives, handed off over an unbuffered channel so
// Recv correctly blocks until the production code's send goroutine has
// produced the next request. Implements just enough of grpc.ClientStream
// to satisfy the interface.
type fakeMissingLogsStream struct {
	records map[int32]rpcapi.MissingLogRecord
	ch      chan int32
}

func newFakeMissingLogsStream(records map[int32]rpcapi.MissingLogRecord) *fakeMissingLogsStream {
	return &fakeMissingLogsStream{records: records, ch: make(chan int32)}
}

func (s *fakeMissingLogsStream) Send(req *rpcapi.MissingLogRequest) error {
	s.ch <- req.OrderNumber
	return nil
}

func (s *fakeMissingLogsStream) Recv() (*rpcapi.MissingLogRecord, error) {
	n, ok := <-s.ch
	if !ok {
		return nil, io.EOF
	}
	rec, found := s.records[n]
	if !found {
		return &rpcapi.MissingLogRecord{OrderNumber: n, Found: false}, nil
	}
	return &rec, nil
}

func (s *fakeMissingLogsStream) Header() (metadata.MD, error) { return nil, nil }
func (s *fakeMissingLogsStream) Trailer() metadata.MD         { return nil }
func (s *fakeMissingLogsStream) CloseSend() error             { close(s.ch); return nil }
func (s *fakeMissingLogsStream) Context() context.Context     { return context.Background() }
func (s *fakeMissingLogsStream) SendMsg(m interface{}) error  { return nil }
func (s *fakeMissingLogsStream) RecvMsg(m interface{}) error  { return nil }

type fakeRecoveryClient struct {
	backOnlineResp *rpcapi.BackOnlineResponse
	backOnlineErr  error
	streamErr      error
	records        map[int32]rpcapi.MissingLogRecord
}

func (f *fakeRecoveryClient) BackOnline(ctx context.Context, in *rpcapi.BackOnlineRequest, opts ...grpc.CallOption) (*rpcapi.BackOnlineResponse, error) {
	return f.backOnlineResp, f.backOnlineErr
}

func (f *fakeRecoveryClient) RequestMissingLogs(ctx context.Context, opts ...grpc.CallOption) (rpcapi.Recovery_RequestMissingLogsClient, error) {
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return newFakeMissingLogsStream(f.records), nil
}

func TestRecoverStopsAtFirstSuccessfulPeerWithNothingToFetch(t *testing.T) {
	r := newTestReplica(t, 1, &fakeCatalogClient{result: 1})
	r.nextOrderNumber = 3

	first := &fakeRecoveryClient{backOnlineResp: &rpcapi.BackOnlineResponse{NextOrderNumber: 2}}
	second := &fakeRecoveryClient{backOnlineResp: &rpcapi.BackOnlineResponse{NextOrderNumber: 10}}
	r.peers = []*Peer{{ID: 2, recovery: first}, {ID: 3, recovery: second}}

	r.Recover(context.Background())

	assert.Equal(t, int32(3), r.nextOrderNumberSnapshot())
}

func TestRecoverFetchesMissingRangeFromPeer(t *testing.T) {
	r := newTestReplica(t, 1, &fakeCatalogClient{result: 1})
	r.nextOrderNumber = 0

	peer := &fakeRecoveryClient{
		backOnlineResp: &rpcapi.BackOnlineResponse{NextOrderNumber: 3},
		records: map[int32]rpcapi.MissingLogRecord{
			0: {OrderNumber: 0, ProductName: "Tux", Quantity: 1, Found: true},
			1: {OrderNumber: 1, ProductName: "Tux", Quantity: 2, Found: true},
			2: {OrderNumber: 2, Found: false},
		},
	}
	r.peers = []*Peer{{ID: 2, recovery: peer}}

	r.Recover(context.Background())

	// Record 2 is not held by the peer, so the highest received number is 1.
	assert.Equal(t, int32(2), r.nextOrderNumberSnapshot())
	name, qty := r.check(1)
	assert.Equal(t, "Tux", name)
	assert.Equal(t, int32(2), qty)
}

func TestRecoverTriesNextPeerOnError(t *testing.T) {
	r := newTestReplica(t, 1, &fakeCatalogClient{result: 1})
	r.nextOrderNumber = 0

	failing := &fakeRecoveryClient{backOnlineErr: errors.New("unreachable")}
	working := &fakeRecoveryClient{
		backOnlineResp: &rpcapi.BackOnlineResponse{NextOrderNumber: 1},
		records: map[int32]rpcapi.MissingLogRecord{
			0: {OrderNumber: 0, ProductName: "Tux", Quantity: 1, Found: true},
		},
	}
	r.peers = []*Peer{{ID: 2, recovery: failing}, {ID: 3, recovery: working}}

	r.Recover(context.Background())

	require.Equal(t, int32(1), r.nextOrderNumberSnapshot())
	name, _ := r.check(0)
	assert.Equal(t, "Tux", name)
}
