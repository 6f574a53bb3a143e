package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"carcatalog/internal/cars"
	"carcatalog/internal/provider"
	"carcatalog/pkg/database"
	"carcatalog/pkg/logger"
	"carcatalog/pkg/utils"
)

// mirror-server answers the provider API from the SQLite mirror, so the
// catalog can run against a local dataset:
//
//	CARCATALOG_PROVIDER_URL=http://localhost:8084 api-server
func main() {
	cfg := utils.LoadConfig()
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logger.Get()

	db, err := database.Open(database.Config{Path: cfg.MirrorPath})
	if err != nil {
		log.Error("open mirror", "path", cfg.MirrorPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Error("db migrate failed", "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), cars.AccessLog(log))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mirror": cfg.MirrorPath})
	})
	provider.RegisterMirrorRoutes(router.Group("/api/v1"), provider.NewMirrorSource(db))

	log.Info("mirror-server listening", "addr", cfg.MirrorAddr, "mirror", cfg.MirrorPath)
	if err := http.ListenAndServe(cfg.MirrorAddr, router); err != nil {
		log.Error("mirror-server stopped", "error", err)
		os.Exit(1)
	}
}
