package main

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"carcatalog/internal/catalog"
	"carcatalog/pkg/models"
)

func TestCarsQuery(t *testing.T) {
	country, hp, full := "Japan", 150, true
	v := carsQuery(catalog.Filter{Country: &country, MinEngineHorsepower: &hp, IsFull: &full})

	if got := v.Get("country"); got != "Japan" {
		t.Fatalf("country = %q", got)
	}
	if got := v.Get("minEngineHorsepower"); got != "150" {
		t.Fatalf("minEngineHorsepower = %q", got)
	}
	if got := v.Get("isFull"); got != "true" {
		t.Fatalf("isFull = %q", got)
	}
	if v.Has("segment") || v.Has("minMaxSpeed") {
		t.Fatalf("unset fields leaked into query: %v", v)
	}
}

func TestHTTPBackend(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		switch r.URL.Path {
		case "/api/engine-types":
			_, _ = w.Write([]byte(`["I4","V6"]`))
		case "/api/max-speed":
			_, _ = w.Write([]byte(`212.5`))
		default:
			http.Error(w, `{"error":"car not found"}`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	b := &httpBackend{baseURL: srv.URL, client: srv.Client()}
	ctx := context.Background()

	values, err := b.DistinctValues(ctx, "cylinderType")
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	if len(values) != 2 || values[1] != "V6" {
		t.Fatalf("values = %v", values)
	}

	brand := "Toyota"
	avg, err := b.MaxSpeed(ctx, catalog.MaxSpeedQuery{Brand: &brand})
	if err != nil {
		t.Fatalf("MaxSpeed: %v", err)
	}
	if avg != 212.5 || gotPath != "/api/max-speed?brand=Toyota" {
		t.Fatalf("avg = %v path = %s", avg, gotPath)
	}

	if _, err := b.GetCar(ctx, 7); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cars.csv")
	items := []models.CatalogRecord{{ID: 1, Brand: "BMW", Model: "X5", Body: models.BodyCharacteristics{BodyStyle: "SUV"}}}

	if err := writeCSV(path, items); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "BMW" || rows[1][14] != "SUV" {
		t.Fatalf("rows = %v", rows)
	}
}
