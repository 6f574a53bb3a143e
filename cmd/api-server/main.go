package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carcatalog/internal/cars"
	"carcatalog/internal/catalog"
	"carcatalog/internal/ingest"
	"carcatalog/internal/metrics"
	"carcatalog/internal/provider"
	synchub "carcatalog/internal/sync"
	"carcatalog/pkg/logger"
	"carcatalog/pkg/utils"
)

func main() {
	cfg := utils.LoadConfig()
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logger.Get()

	src, closeSrc, err := provider.FromConfig(cfg)
	if err != nil {
		log.Error("open source", "error", err)
		os.Exit(1)
	}
	defer closeSrc()

	store := catalog.NewStore()
	engine := catalog.NewEngine(store)
	hub := synchub.NewHub()
	tcpSrv := synchub.NewServer(cfg.SyncAddr, hub)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), cars.RequestID(), cars.AccessLog(log), metrics.GinMiddleware())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	var ready atomic.Bool

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "source": src.Name()})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		if !ready.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not_ready",
				"records": store.Size(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"records":     store.Size(),
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"source":      src.Name(),
			"records":     store.Size(),
			"ready":       ready.Load(),
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", synchub.WSHandler(hub))

	cars.NewHandler(engine).RegisterRoutes(router.Group("/api"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http api listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// the catalog loads in the background; /ready reports 503 until it is done
	go func() {
		_, err := ingest.Run(ctx, src, store, ingest.Options{
			BatchSize: cfg.LoadBatchSize,
			Logger:    log,
			Publisher: hub,
		})
		if err != nil {
			errCh <- err
			return
		}
		ready.Store(true)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server error", "error", err)
	}

	log.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Error("tcp shutdown", "error", err)
	}

	wg.Wait()
	log.Info("servers stopped")
}
