// Package ingest runs the startup pipeline: fetch the provider datasets,
// build catalog records and load them into the store.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"carcatalog/internal/catalog"
	"carcatalog/internal/metrics"
	"carcatalog/internal/provider"
	catsync "carcatalog/internal/sync"
	"carcatalog/pkg/logger"
)

// Publisher receives one event per loaded batch. *sync.Hub implements it.
type Publisher interface {
	Publish(ev catsync.CatalogEvent)
}

type Options struct {
	// BatchSize splits the load into several store batches. <= 0 loads
	// everything at once.
	BatchSize int
	Logger    *slog.Logger
	Publisher Publisher
}

type Result struct {
	RunID   uuid.UUID
	Brands  int
	Cars    int
	Specs   int
	Built   int
	Dropped int
	Loaded  int
	Size    int
	Report  catalog.Report
}

// Run fetches from src and loads the built records into store. A fetch
// error aborts the run before anything is stored.
func Run(ctx context.Context, src provider.Source, store *catalog.Store, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Get()
	}
	res := Result{RunID: uuid.New()}
	log = log.With("run_id", res.RunID.String(), "source", src.Name())
	start := time.Now()

	log.Info("loading provider datasets")
	ds, err := src.Fetch(ctx)
	if err != nil {
		metrics.IngestDuration.WithLabelValues(src.Name(), "error").Observe(time.Since(start).Seconds())
		publish(opts.Publisher, catsync.CatalogEvent{
			Type:  catsync.EventCatalogFailed,
			RunID: res.RunID.String(),
			Size:  store.Size(),
			Error: err.Error(),
		})
		return res, fmt.Errorf("fetch from %s: %w", src.Name(), err)
	}
	res.Brands, res.Cars, res.Specs = len(ds.Brands), len(ds.Cars), len(ds.Specs)
	log.Info("provider datasets loaded", "brands", res.Brands, "cars", res.Cars, "specs", res.Specs)

	records, rep := catalog.Build(ds)
	res.Report = rep
	res.Built, res.Dropped = rep.Built, rep.Dropped
	for _, kind := range []string{catalog.RefBrand, catalog.RefSpec, catalog.RefDuplicate} {
		if n := rep.DroppedBy(kind); n > 0 {
			metrics.RecordsDropped.WithLabelValues(kind).Add(float64(n))
			log.Warn("cars dropped", "reason", kind, "count", n)
		}
	}
	for _, u := range rep.Unresolved {
		log.Debug("car dropped", "error", u.Error())
	}

	for i, b := range batches(records, opts.BatchSize) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		added := store.Load(b)
		res.Loaded += added
		size := store.Size()
		metrics.CatalogSize.Set(float64(size))
		publish(opts.Publisher, catsync.CatalogEvent{
			Type:   catsync.EventCatalogLoaded,
			RunID:  res.RunID.String(),
			Batch:  i + 1,
			Loaded: added,
			Size:   size,
		})
		log.Debug("batch loaded", "batch", i+1, "added", added, "size", size)
	}

	res.Size = store.Size()
	metrics.IngestDuration.WithLabelValues(src.Name(), "ok").Observe(time.Since(start).Seconds())
	log.Info("catalog loaded",
		"built", res.Built,
		"dropped", res.Dropped,
		"loaded", res.Loaded,
		"size", res.Size,
		"took", time.Since(start).String(),
	)
	return res, nil
}

func batches[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size >= len(items) {
		return [][]T{items}
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end:end])
	}
	return out
}

func publish(p Publisher, ev catsync.CatalogEvent) {
	if p == nil {
		return
	}
	ev.At = time.Now().UTC()
	p.Publish(ev)
}
