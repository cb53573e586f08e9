// Command catalog runs the catalog service: the durable, lock-protected
// product table every front-end and order replica reads stock and price
// from.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/proyuen/toystore/internal/catalog"
	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/proyuen/toystore/pkg/config"
	"github.com/proyuen/toystore/pkg/logging"
	"github.com/proyuen/toystore/pkg/rpcx"
)

func main() {
	cfg, err := config.LoadCatalog()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New("catalog", 0)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	table, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("failed to load catalog file: %v", err)
	}

	frontEndConn, err := rpcx.Dial(cfg.FrontEndAddr)
	if err != nil {
		log.Fatalf("failed to dial front-end: %v", err)
	}
	defer frontEndConn.Close()

	invalidator := catalog.NewInvalidator(rpcapi.NewFrontEndClient(frontEndConn), cfg.MaxWorkers, logger)
	restocker := catalog.NewRestocker(table, invalidator, cfg.RestockInterval, logger)
	writer := catalog.NewWriter(table, cfg.CatalogFile, logger)

	go restocker.Run(ctx)
	go writer.Run(ctx)

	server := catalog.NewServer(table, invalidator, logger)

	grpcServer := grpc.NewServer()
	rpcapi.RegisterCatalogServer(grpcServer, server)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", addr, err)
	}

	go func() {
		<-ctx.Done()
		logger.Info("catalog: shutting down")
		grpcServer.GracefulStop()
	}()

	logger.Info("catalog: listening", "addr", addr)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("catalog server failed: %v", err)
	}
}
