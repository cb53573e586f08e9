// Command frontend runs the stateless HTTP front-end: an in-memory product
// cache backed by the catalog service, and leader-routed order writes
// across the order replicas.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/proyuen/toystore/internal/frontend"
	"github.com/proyuen/toystore/internal/rpcapi"
	"github.com/proyuen/toystore/pkg/config"
	"github.com/proyuen/toystore/pkg/logging"
	"github.com/proyuen/toystore/pkg/rpcx"
	"github.com/proyuen/toystore/pkg/snowflake"
)

func main() {
	cfg, err := config.LoadFrontEnd()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New("frontend", 0)

	// correlationID() in router.go calls snowflake.GenID() on every
	// request; the node must be initialized before the HTTP server starts
	// accepting traffic.
	if err := snowflake.Init(1); err != nil {
		log.Fatalf("failed to init snowflake node: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalogConn, err := rpcx.Dial(cfg.CatalogAddr)
	if err != nil {
		log.Fatalf("failed to dial catalog: %v", err)
	}
	defer catalogConn.Close()

	var replicas []*frontend.ReplicaHandle
	for _, r := range cfg.Replicas {
		conn, err := rpcx.Dial(r.Addr)
		if err != nil {
			log.Fatalf("failed to dial replica %d at %s: %v", r.ID, r.Addr, err)
		}
		defer conn.Close()
		replicas = append(replicas, &frontend.ReplicaHandle{
			ID:    int32(r.ID),
			Addr:  r.Addr,
			Order: rpcapi.NewOrderClient(conn),
		})
	}

	cache := frontend.NewCache()
	election := frontend.NewElection(replicas, logger)
	service := frontend.NewService(cache, election, rpcapi.NewCatalogClient(catalogConn), logger)
	handlers := frontend.NewHandlers(service)
	router := frontend.NewRouter(handlers)

	watchdog := frontend.NewWatchdog(election, cfg.WatchdogTick, logger)
	go watchdog.Run(ctx)

	grpcServer := grpc.NewServer()
	rpcapi.RegisterFrontEndServer(grpcServer, frontend.NewServer(service))

	grpcAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", grpcAddr, err)
	}

	go func() {
		<-ctx.Done()
		logger.Info("frontend: grpc shutting down")
		grpcServer.GracefulStop()
	}()

	go func() {
		logger.Info("frontend: grpc listening", "addr", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("frontend grpc server failed: %v", err)
		}
	}()

	httpAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	httpServer := &http.Server{Addr: httpAddr, Handler: router}

	go func() {
		<-ctx.Done()
		logger.Info("frontend: http shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("frontend: http listening", "addr", httpAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("frontend http server failed: %v", err)
	}
}
