// Command orderreplica runs one of the three order replicas: monotonic
// order numbering when this replica holds leadership, propagation to its
// peers, and gap-filling recovery on startup.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/proyuen/toystore/internal/orderreplica"
	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/proyuen/toystore/pkg/config"
	"github.com/proyuen/toystore/pkg/logging"
	"github.com/proyuen/toystore/pkg/rpcx"
)

func main() {
	cfg, err := config.LoadOrderReplica()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New("orderreplica", cfg.ComponentID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalogConn, err := rpcx.Dial(cfg.CatalogAddr)
	if err != nil {
		log.Fatalf("failed to dial catalog: %v", err)
	}
	defer catalogConn.Close()

	var peers []*orderreplica.Peer
	for _, p := range cfg.Peers {
		peer, err := orderreplica.NewPeer(int32(p.ID), p.Addr)
		if err != nil {
			log.Fatalf("failed to dial peer %d at %s: %v", p.ID, p.Addr, err)
		}
		peers = append(peers, peer)
	}

	replica, err := orderreplica.New(orderreplica.Config{
		ComponentID: int32(cfg.ComponentID),
		LogPath:     cfg.OrderLogFile,
		Catalog:     rpcapi.NewCatalogClient(catalogConn),
		Peers:       peers,
		MaxWorkers:  cfg.MaxWorkers,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("failed to build replica: %v", err)
	}

	grpcServer := grpc.NewServer()
	rpcapi.RegisterOrderServer(grpcServer, replica)
	rpcapi.RegisterRecoveryServer(grpcServer, replica)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", addr, err)
	}

	go func() {
		<-ctx.Done()
		logger.Info("orderreplica: shutting down")
		grpcServer.GracefulStop()
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- grpcServer.Serve(lis)
	}()

	// Recovery runs once this replica is reachable by its peers, so their
	// own startup recovery can in turn pull gaps from it.
	replica.Recover(ctx)

	flusher := orderreplica.NewFlusher(replica, logger)
	go flusher.Run(ctx)

	logger.Info("orderreplica: listening", "addr", addr, "component_id", cfg.ComponentID)
	if err := <-serveErr; err != nil {
		log.Fatalf("orderreplica server failed: %v", err)
	}
}
