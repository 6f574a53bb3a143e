package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"carcatalog/pkg/logger"
	"carcatalog/pkg/models"
)

type fakeProvider struct {
	brands      []models.Brand
	cars        []models.RawCar
	specs       map[int64]models.RawSpec
	brandStatus int
	specHits    atomic.Int32
}

func (f *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/brands":
		if f.brandStatus != 0 {
			http.Error(w, "boom", f.brandStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(f.brands)
	case r.URL.Path == "/api/v1/cars":
		_ = json.NewEncoder(w).Encode(f.cars)
	case strings.HasPrefix(r.URL.Path, "/api/v1/cars/"):
		f.specHits.Add(1)
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/v1/cars/"), 10, 64)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		spec, ok := f.specs[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(spec)
	default:
		http.NotFound(w, r)
	}
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		brands: []models.Brand{
			{ID: 1, Title: "Toyota", Country: "Japan"},
			{ID: 2, Title: "BMW", Country: "Germany"},
		},
		cars: []models.RawCar{
			{ID: 10, BrandID: 1, Segment: "D", Model: "Camry"},
			{ID: 20, BrandID: 2, Segment: "E", Model: "X5"},
			{ID: 30, BrandID: 2, Segment: "E", Model: "M5"},
		},
		specs: map[int64]models.RawSpec{
			10: {ID: 10, FuelType: models.FuelPetrol, HP: 200, MaxSpeed: 210},
			20: {ID: 20, FuelType: models.FuelDiesel, HP: 265, MaxSpeed: 230},
		},
	}
}

func newTestSource(url string) *HTTPSource {
	src := NewHTTPSource(url, 5*time.Second, 4, 0)
	src.Logger = logger.Discard()
	return src
}

func TestHTTPSourceFetch(t *testing.T) {
	fp := newFakeProvider()
	srv := httptest.NewServer(fp)
	defer srv.Close()

	ds, err := newTestSource(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(ds.Brands) != 2 || ds.Brands[2].Title != "BMW" {
		t.Fatalf("brands = %+v", ds.Brands)
	}
	if len(ds.Cars) != 3 || ds.Cars[0].ID != 10 || ds.Cars[2].ID != 30 {
		t.Fatalf("cars = %+v", ds.Cars)
	}
	if got := fp.specHits.Load(); got != 3 {
		t.Fatalf("spec requests = %d, want 3", got)
	}
	// car 30 has no spec upstream; it is simply missing from the dataset
	if len(ds.Specs) != 2 {
		t.Fatalf("specs = %+v, want 2 entries", ds.Specs)
	}
	if _, ok := ds.Specs[30]; ok {
		t.Fatalf("unexpected spec for car 30")
	}
	if ds.Specs[20].MaxSpeed != 230 {
		t.Fatalf("spec 20 = %+v", ds.Specs[20])
	}
}

func TestHTTPSourceBrandFailureIsFatal(t *testing.T) {
	fp := newFakeProvider()
	fp.brandStatus = http.StatusInternalServerError
	srv := httptest.NewServer(fp)
	defer srv.Close()

	if _, err := newTestSource(srv.URL).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error when brands endpoint fails")
	}
}

func TestHTTPSourceFetchSpecNotFound(t *testing.T) {
	srv := httptest.NewServer(newFakeProvider())
	defer srv.Close()

	_, err := newTestSource(srv.URL).FetchSpec(context.Background(), 999)
	if err == nil || !strings.Contains(err.Error(), ErrNotFound.Error()) {
		t.Fatalf("FetchSpec(999) err = %v, want not found", err)
	}
}

func TestHTTPSourceCancelled(t *testing.T) {
	srv := httptest.NewServer(newFakeProvider())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestSource(srv.URL).Fetch(ctx); err == nil {
		t.Fatalf("expected error on cancelled context")
	}
}
