package catalog

import (
	"errors"
	"testing"

	"carcatalog/pkg/models"
)

func TestBuildJoinsBrandAndSpec(t *testing.T) {
	ds := models.NewDataset()
	ds.Brands[1] = models.Brand{ID: 1, Title: "Toyota", Country: "Japan"}
	ds.Cars = []models.RawCar{{ID: 10, BrandID: 1, Model: "Corolla", Segment: "C", Generation: "E210", Modification: "1.8"}}
	ds.Specs[10] = models.RawSpec{ID: 10, FuelType: models.FuelPetrol, EngineType: models.EngineI4, EngineDisplacement: 1798, HP: 140, MaxSpeed: 200, GearboxType: models.GearboxCVT, WheelDriveType: models.WheelDriveFront, BodyLength: 4630, BodyWidth: 1780, BodyHeight: 1435, BodyStyle: "Sedan"}

	records, rep := Build(ds)
	if len(records) != 1 || rep.Built != 1 || rep.Dropped != 0 {
		t.Fatalf("unexpected build: %d records, report %+v", len(records), rep)
	}
	r := records[0]
	if r.ID != 10 || r.Brand != "Toyota" || r.Country != "Japan" || r.Model != "Corolla" || r.Segment != "C" {
		t.Fatalf("unexpected record header: %+v", r)
	}
	if r.Generation != "E210" || r.Modification != "1.8" {
		t.Fatalf("generation/modification not copied: %+v", r)
	}
	want := models.EngineCharacteristics{FuelType: models.FuelPetrol, CylinderType: models.EngineI4, Displacement: 1798, Horsepower: 140, MaxSpeed: 200, GearboxType: models.GearboxCVT}
	if r.Engine != want {
		t.Fatalf("engine = %+v, want %+v", r.Engine, want)
	}
	wantBody := models.BodyCharacteristics{Length: 4630, Width: 1780, Height: 1435, BodyStyle: "Sedan", WheelDriveType: models.WheelDriveFront}
	if r.Body != wantBody {
		t.Fatalf("body = %+v, want %+v", r.Body, wantBody)
	}
}

func TestBuildDropsUnresolved(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(ds *models.Dataset)
		wantIDs  []int64
		dropped  int
		wantKind string
	}{
		{"missing brand", func(ds *models.Dataset) { delete(ds.Brands, 2) }, []int64{10, 11, 12, 30}, 2, RefBrand},
		{"missing spec", func(ds *models.Dataset) { delete(ds.Specs, 12) }, []int64{10, 11, 20, 21, 30}, 1, RefSpec},
		{"duplicate car id", func(ds *models.Dataset) {
			ds.Cars = append(ds.Cars, models.RawCar{ID: 10, BrandID: 2, Model: "Impostor"})
		}, []int64{10, 11, 12, 20, 21, 30}, 1, RefDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := sampleDataset()
			tt.mutate(&ds)
			records, rep := Build(ds)

			got := ids(records)
			if len(got) != len(tt.wantIDs) || len(records) != len(tt.wantIDs) {
				t.Fatalf("got ids %v, want %v", got, tt.wantIDs)
			}
			for _, id := range tt.wantIDs {
				if !got[id] {
					t.Fatalf("missing id %d in %v", id, got)
				}
			}
			if rep.Dropped != tt.dropped || rep.DroppedBy(tt.wantKind) != tt.dropped {
				t.Fatalf("dropped = %d (%s: %d), want %d", rep.Dropped, tt.wantKind, rep.DroppedBy(tt.wantKind), tt.dropped)
			}
			for _, u := range rep.Unresolved {
				if !errors.Is(u, ErrUnresolvedReference) {
					t.Fatalf("expected ErrUnresolvedReference, got %v", u)
				}
			}
		})
	}
}

func TestBuildDuplicatesAreNotUnresolved(t *testing.T) {
	ds := sampleDataset()
	ds.Cars = append(ds.Cars, models.RawCar{ID: 10, BrandID: 2}, models.RawCar{ID: 11, BrandID: 9})
	delete(ds.Specs, 30)

	_, rep := Build(ds)
	if len(rep.Duplicates) != 2 || rep.Duplicates[0] != 10 || rep.Duplicates[1] != 11 {
		t.Fatalf("duplicates = %v, want [10 11]", rep.Duplicates)
	}
	if len(rep.Unresolved) != 1 || rep.Unresolved[0].Kind != RefSpec {
		t.Fatalf("unresolved = %v, want only the missing spec", rep.Unresolved)
	}
	if rep.Dropped != 3 {
		t.Fatalf("dropped = %d, want 3", rep.Dropped)
	}
}

func TestBuildImpostorDoesNotOverrideFirst(t *testing.T) {
	ds := sampleDataset()
	ds.Cars = append(ds.Cars, models.RawCar{ID: 10, BrandID: 2, Model: "Impostor"})
	records, _ := Build(ds)
	for _, r := range records {
		if r.ID == 10 && r.Model != "Corolla" {
			t.Fatalf("duplicate replaced first record: %+v", r)
		}
	}
}

func TestBuildMissingBrandSingleCar(t *testing.T) {
	ds := models.NewDataset()
	ds.Cars = []models.RawCar{{ID: 10, BrandID: 1, Model: "Corolla", Segment: "C"}}
	ds.Specs[10] = models.RawSpec{ID: 10, FuelType: models.FuelPetrol, HP: 140, MaxSpeed: 200, BodyStyle: "Sedan"}

	records, rep := Build(ds)
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if rep.Dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", rep.Dropped)
	}
	if got := rep.Unresolved[0].Error(); got != "car 10: brand 1 not found" {
		t.Fatalf("unexpected error text %q", got)
	}
}

func TestBuildEmptyDataset(t *testing.T) {
	records, rep := Build(models.NewDataset())
	if records == nil || len(records) != 0 || rep.Dropped != 0 {
		t.Fatalf("unexpected: %v %+v", records, rep)
	}
}
