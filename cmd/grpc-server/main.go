package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"carcatalog/internal/catalog"
	"carcatalog/internal/grpcserver"
	"carcatalog/internal/ingest"
	"carcatalog/internal/provider"
	"carcatalog/pkg/logger"
	"carcatalog/pkg/utils"
)

func main() {
	cfg := utils.LoadConfig()
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := provider.FromConfig(cfg)
	if err != nil {
		log.Error("open source", "error", err)
		os.Exit(1)
	}
	defer closeSrc()

	// gRPC clients get a complete catalog: load before listening
	store := catalog.NewStore()
	if _, err := ingest.Run(ctx, src, store, ingest.Options{BatchSize: cfg.LoadBatchSize, Logger: log}); err != nil {
		log.Error("catalog ingest failed", "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Error("grpc listen failed", "addr", cfg.GRPCAddr, "error", err)
		os.Exit(1)
	}

	gs := grpcserver.New(catalog.NewEngine(store), log)
	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received")
		gs.GracefulStop()
	}()

	log.Info("grpc server listening", "addr", cfg.GRPCAddr)
	if err := gs.Serve(listener); err != nil {
		log.Error("grpc server stopped", "error", err)
		os.Exit(1)
	}
}
