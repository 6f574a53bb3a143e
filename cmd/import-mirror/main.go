package main

import (
	"context"
	"os"
	"time"

	"carcatalog/internal/catalog"
	"carcatalog/internal/provider"
	"carcatalog/pkg/database"
	"carcatalog/pkg/logger"
	"carcatalog/pkg/utils"
)

// import-mirror copies the live provider datasets into the SQLite mirror.
func main() {
	cfg := utils.LoadConfig()
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

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

	src := provider.NewHTTPSource(cfg.ProviderURL, cfg.ProviderTimeout, cfg.ProviderConcurrency, cfg.ProviderRPS)
	log.Info("fetching provider datasets", "url", cfg.ProviderURL)
	ds, err := src.Fetch(ctx)
	if err != nil {
		log.Error("fetch failed", "error", err)
		os.Exit(1)
	}

	// build only to report what the catalog would drop; the mirror keeps everything
	_, rep := catalog.Build(ds)
	log.Info("provider datasets fetched",
		"brands", len(ds.Brands),
		"cars", len(ds.Cars),
		"specs", len(ds.Specs),
		"buildable", rep.Built,
		"dropped", rep.Dropped,
	)

	if err := provider.SaveDataset(ctx, db, ds); err != nil {
		log.Error("save failed", "error", err)
		os.Exit(1)
	}
	log.Info("mirror populated", "path", cfg.MirrorPath)
}
