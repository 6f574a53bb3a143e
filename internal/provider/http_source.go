package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"carcatalog/internal/metrics"
	"carcatalog/pkg/logger"
	"carcatalog/pkg/models"
)

// ErrNotFound is returned for a 404 from the provider.
var ErrNotFound = errors.New("provider: not found")

// HTTPSource talks to the provider REST API:
//
//	GET {BaseURL}/api/v1/brands     -> []Brand
//	GET {BaseURL}/api/v1/cars       -> []RawCar
//	GET {BaseURL}/api/v1/cars/{id}  -> RawSpec (one request per car)
//
// Spec requests run on a bounded worker pool and every request waits on
// Limiter, so a large catalog doesn't hammer the provider.
type HTTPSource struct {
	BaseURL     string
	Client      *http.Client
	Concurrency int
	Limiter     *rate.Limiter
	Logger      *slog.Logger
}

// NewHTTPSource builds a source. rps <= 0 disables pacing.
func NewHTTPSource(baseURL string, timeout time.Duration, concurrency int, rps float64) *HTTPSource {
	limit := rate.Inf
	burst := 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = max(1, int(rps))
	}
	return &HTTPSource{
		BaseURL:     baseURL,
		Client:      &http.Client{Timeout: timeout},
		Concurrency: concurrency,
		Limiter:     rate.NewLimiter(limit, burst),
	}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logger.Get()
}

// Fetch loads brands and cars, then every car's spec. A spec that cannot be
// fetched is logged and left out; the catalog builder drops that car.
func (s *HTTPSource) Fetch(ctx context.Context) (models.Dataset, error) {
	ds := models.NewDataset()

	var brands []models.Brand
	if err := s.getJSON(ctx, "brands", "/api/v1/brands", &brands); err != nil {
		return ds, err
	}
	for _, b := range brands {
		ds.Brands[b.ID] = b
	}

	if err := s.getJSON(ctx, "cars", "/api/v1/cars", &ds.Cars); err != nil {
		return ds, err
	}

	specs, err := s.fetchSpecs(ctx, ds.Cars)
	if err != nil {
		return ds, err
	}
	ds.Specs = specs
	return ds, nil
}

func (s *HTTPSource) fetchSpecs(ctx context.Context, cars []models.RawCar) (map[int64]models.RawSpec, error) {
	size := s.Concurrency
	if size <= 0 {
		size = 1
	}
	pool, err := ants.NewPool(size, ants.WithPanicHandler(func(v any) {
		s.log().Error("spec fetch panic", "panic", v)
	}))
	if err != nil {
		return nil, fmt.Errorf("provider: spec pool: %w", err)
	}
	defer pool.Release()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		specs  = make(map[int64]models.RawSpec, len(cars))
		failed int
	)
	for _, car := range cars {
		wg.Add(1)
		id := car.ID
		err := pool.Submit(func() {
			defer wg.Done()
			spec, err := s.FetchSpec(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				s.log().Warn("spec fetch failed", "car_id", id, "error", err)
				return
			}
			specs[id] = spec
		})
		if err != nil {
			wg.Done()
			return nil, fmt.Errorf("provider: submit spec fetch: %w", err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failed > 0 {
		s.log().Warn("some specs are missing", "failed", failed, "cars", len(cars))
	}
	return specs, nil
}

// FetchSpec loads the spec of a single car.
func (s *HTTPSource) FetchSpec(ctx context.Context, id int64) (models.RawSpec, error) {
	var spec models.RawSpec
	if err := s.getJSON(ctx, "car", "/api/v1/cars/"+strconv.FormatInt(id, 10), &spec); err != nil {
		return spec, err
	}
	if spec.ID == 0 {
		spec.ID = id
	}
	if spec.ID != id {
		return spec, fmt.Errorf("provider: spec for car %d carries id %d", id, spec.ID)
	}
	return spec, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, endpoint, path string, out any) error {
	if err := s.Limiter.Wait(ctx); err != nil {
		return fmt.Errorf("provider: %s: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("provider: %s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("provider: %s: request: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.ProviderRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("provider: %s %s: %w", endpoint, path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("provider: %s: status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("provider: %s: decode: %w", endpoint, err)
	}
	return nil
}
