package orderreplica

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/proyuen/toystore/pkg/rpcx"
)

// BackOnline is the server side of the recovery probe: it reports this
// replica's current next order number.
func (r *Replica) BackOnline(ctx context.Context, _ *rpcapi.BackOnlineRequest) (*rpcapi.BackOnlineResponse, error) {
	return &rpcapi.BackOnlineResponse{NextOrderNumber: r.nextOrderNumberSnapshot()}, nil
}

// RequestMissingLogs is the server side of the gap-filling stream: for each
// requested order number it sends back the record if held, or Found=false.
func (r *Replica) RequestMissingLogs(stream rpcapi.Recovery_RequestMissingLogsServer) error {
	for {
		req, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		r.logMu.RLock()
		rec, ok := r.log[req.OrderNumber]
		r.logMu.RUnlock()

		resp := &rpcapi.MissingLogRecord{OrderNumber: req.OrderNumber, Found: ok}
		if ok {
			resp.ProductName = rec.ProductName
			resp.Quantity = rec.Quantity
		}
		if err := stream.Send(resp); err != nil {
			return err
		}
	}
}

// Recover runs the startup recovery procedure: for each peer, in order,
// learn its next order number, request every number this replica is
// missing relative to it, and stop at the first peer that succeeds.
func (r *Replica) Recover(ctx context.Context) {
	r.numMu.Lock()
	own := r.nextOrderNumber
	r.numMu.Unlock()

	for _, p := range r.peers {
		bctx, cancel := rpcx.WithDeadline(ctx, recoveryDeadline)
		resp, err := p.recovery.BackOnline(bctx, &rpcapi.BackOnlineRequest{})
		cancel()
		if err != nil {
			r.logger.Warn("recovery: peer unreachable", slog.Int("peer", int(p.ID)), slog.Any("error", err))
			continue
		}

		if resp.NextOrderNumber <= own {
			r.logger.Info("recovery: nothing to fetch from peer", slog.Int("peer", int(p.ID)))
			return
		}

		numbers := make([]int32, 0, resp.NextOrderNumber-own)
		for n := own; n < resp.NextOrderNumber; n++ {
			numbers = append(numbers, n)
		}

		recs, err := r.requestFromPeer(ctx, p, numbers)
		if err != nil {
			r.logger.Warn("recovery: stream to peer failed", slog.Int("peer", int(p.ID)), slog.Any("error", err))
			continue
		}

		r.logMu.Lock()
		maxReceived := own - 1
		for n, rec := range recs {
			r.log[n] = rec
			if n > maxReceived {
				maxReceived = n
			}
		}
		r.logMu.Unlock()

		r.numMu.Lock()
		if maxReceived+1 > r.nextOrderNumber {
			r.nextOrderNumber = maxReceived + 1
		}
		r.numMu.Unlock()

		r.logger.Info("recovery: completed", slog.Int("peer", int(p.ID)), slog.Int("records", len(recs)))
		return
	}

	r.logger.Warn("recovery: no peer available")
}

// recoverFromAnyPeer requests numbers from each peer in turn, returning the
// first successful response. Used by the flusher to fill gaps it detects
// between write_cursor and next_order_number.
func (r *Replica) recoverFromAnyPeer(ctx context.Context, numbers []int32) (map[int32]Record, error) {
	for _, p := range r.peers {
		recs, err := r.requestFromPeer(ctx, p, numbers)
		if err != nil {
			r.logger.Warn("gap fill: peer failed", slog.Int("peer", int(p.ID)), slog.Any("error", err))
			continue
		}
		return recs, nil
	}
	return nil, errors.New("orderreplica: no peer available for gap fill")
}

// requestFromPeer opens a RequestMissingLogs stream to p, sends every
// number in numbers, and collects the records the peer actually holds.
func (r *Replica) requestFromPeer(ctx context.Context, p *Peer, numbers []int32) (map[int32]Record, error) {
	if len(numbers) == 0 {
		return map[int32]Record{}, nil
	}

	sctx, cancel := rpcx.WithDeadline(ctx, recoveryDeadline)
	defer cancel()

	stream, err := p.recovery.RequestMissingLogs(sctx)
	if err != nil {
		return nil, err
	}

	go func() {
		for _, n := range numbers {
			if err := stream.Send(&rpcapi.MissingLogRequest{OrderNumber: n, ComponentID: r.componentID}); err != nil {
				return
			}
		}
		_ = stream.CloseSend()
	}()

	out := make(map[int32]Record)
	for {
		rec, err := stream.Recv()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if rec.Found {
			out[rec.OrderNumber] = Record{ProductName: rec.ProductName, Quantity: rec.Quantity}
		}
	}
}
